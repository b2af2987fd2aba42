package nn

import "math"

// Activation is an element-wise activation function.
//
// DerivativeFromOutput receives the already-computed activation y = f(x)
// rather than x, which is how backpropagation uses it: the forward pass
// keeps layer outputs, not their pre-activation inputs.
type Activation interface {
	// Forward computes f(x).
	Forward(x float64) float64

	// DerivativeFromOutput computes f'(x) given y = f(x).
	DerivativeFromOutput(y float64) float64
}

// Sigmoid is the logistic activation σ(x) = 1 / (1 + exp(-x)).
//
// Sigmoid squashes values to the range (0, 1). Its derivative expressed in
// terms of the output is σ(x)(1 - σ(x)).
//
// Example:
//
//	var act nn.Activation = nn.Sigmoid{}
//	y := act.Forward(0) // 0.5
type Sigmoid struct{}

// Forward computes σ(x).
//
// For negative x the equivalent form exp(x) / (1 + exp(x)) is used so that
// exp never overflows.
func (Sigmoid) Forward(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	z := math.Exp(x)
	return z / (1 + z)
}

// DerivativeFromOutput computes σ'(x) = y(1 - y).
func (Sigmoid) DerivativeFromOutput(y float64) float64 {
	return y * (1 - y)
}
