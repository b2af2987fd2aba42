package nn

import (
	"github.com/born-ml/tinynet/internal/tensor"
)

// Parameter is a named trainable weight matrix.
//
// A Parameter owns its matrix: Tensor returns a copy, and the only way to
// change the values is Update.
type Parameter struct {
	name  string
	value *tensor.Matrix
}

// NewParameter creates a parameter that takes ownership of value.
func NewParameter(name string, value *tensor.Matrix) *Parameter {
	return &Parameter{name: name, value: value}
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// Shape returns the fixed shape of the parameter.
func (p *Parameter) Shape() tensor.Shape {
	return p.value.Shape()
}

// Tensor returns a copy of the current values.
func (p *Parameter) Tensor() *tensor.Matrix {
	return p.value.Clone()
}

// Update applies value += lr * delta in place.
func (p *Parameter) Update(lr float64, delta *tensor.Matrix) {
	p.value.AddScaled(lr, delta)
}

// view exposes the owned matrix to the network's own arithmetic.
func (p *Parameter) view() *tensor.Matrix {
	return p.value
}
