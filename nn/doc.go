// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides a three-layer feed-forward neural network trained by
// single-sample backpropagation.
//
// # Overview
//
// A Network holds two weight matrices, input→hidden and hidden→output, and
// uses an Activation (Sigmoid by default) on both layers. There are no bias
// terms.
//
//   - Query(inputs) runs the forward pass and returns the output activations.
//   - Train(inputs, targets) runs one step of backpropagation and updates
//     both weight matrices in place.
//
// # Initialization
//
// Weights are either injected as literal matrices (New, Literal) for
// reproducible results, or drawn from a seeded normal distribution with
// standard deviation 1/sqrt(layer size) (NewNormal).
//
// # Concurrency
//
// Query may be called from multiple goroutines. Train is exclusive with
// respect to other calls on the same Network.
package nn
