// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense matrices used by
// tinynet networks.
//
// Example:
//
//	w, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	x, err := tensor.ColumnVector([]float64{1, 1})
//	y := w.MatMul(x)
package tensor

import (
	"github.com/born-ml/tinynet/internal/parallel"
	"github.com/born-ml/tinynet/internal/tensor"
)

// Matrix is a two-dimensional float64 matrix with fixed shape.
type Matrix = tensor.Matrix

// Shape holds matrix dimensions.
type Shape = tensor.Shape

// ParallelConfig controls how large products are split across goroutines.
type ParallelConfig = parallel.Config

// Errors returned by the constructors.
var (
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrShapeMismatch = tensor.ErrShapeMismatch
)

// Zeros creates a zero-filled matrix.
func Zeros(shape Shape) (*Matrix, error) {
	return tensor.Zeros(shape)
}

// FromSlice creates a matrix from row-major data.
func FromSlice(data []float64, shape Shape) (*Matrix, error) {
	return tensor.FromSlice(data, shape)
}

// FromRows creates a matrix from a slice of equal-length rows.
func FromRows(rows [][]float64) (*Matrix, error) {
	return tensor.FromRows(rows)
}

// MustFromRows is like FromRows but panics on error.
func MustFromRows(rows [][]float64) *Matrix {
	return tensor.MustFromRows(rows)
}

// ColumnVector creates an n×1 matrix.
func ColumnVector(v []float64) (*Matrix, error) {
	return tensor.ColumnVector(v)
}

// SetParallelConfig replaces the fan-out settings used by matrix kernels.
func SetParallelConfig(cfg ParallelConfig) {
	tensor.SetParallelConfig(cfg)
}

// DefaultParallelConfig returns fan-out settings sized to the host CPU.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
