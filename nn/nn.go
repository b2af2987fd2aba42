// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/tinynet/internal/nn"
	"github.com/born-ml/tinynet/tensor"
)

// Network is a three-layer feed-forward network.
type Network = nn.Network

// Config describes a network to build with NewFromConfig.
type Config = nn.Config

// Activation is an element-wise activation with a derivative expressed in
// terms of its output.
type Activation = nn.Activation

// Sigmoid is the logistic activation.
type Sigmoid = nn.Sigmoid

// Initializer produces initial weight matrices.
type Initializer = nn.Initializer

// Normal draws initial weights from a normal distribution.
type Normal = nn.Normal

// Parameter is a named weight matrix.
type Parameter = nn.Parameter

// Errors returned by constructors, Query and Train.
var (
	ErrShapeMismatch = nn.ErrShapeMismatch
	ErrDimension     = nn.ErrDimension
)

// New creates a network from literal weight matrices.
//
// Example:
//
//	wih := tensor.MustFromRows([][]float64{{0.1, 0.2}, {0.3, 0.4}})
//	who := tensor.MustFromRows([][]float64{{0.5, 0.6}})
//	net, err := nn.New(2, 2, 1, 0.3, wih, who)
func New(inputSize, hiddenSize, outputSize int, learningRate float64, wih, who *tensor.Matrix) (*Network, error) {
	return nn.New(inputSize, hiddenSize, outputSize, learningRate, wih, who)
}

// NewFromConfig creates a network using the configured initializers.
func NewFromConfig(cfg Config) (*Network, error) {
	return nn.NewFromConfig(cfg)
}

// Literal returns an Initializer yielding a copy of m.
func Literal(m *tensor.Matrix) Initializer {
	return nn.Literal(m)
}

// NewNormal creates a seeded zero-mean Normal initializer with standard
// deviation 1/sqrt(layer size).
func NewNormal(seed uint64) *Normal {
	return nn.NewNormal(seed)
}
