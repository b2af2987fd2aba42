// Package nn implements a three-layer feed-forward neural network.
//
// The network has an input, a hidden and an output layer joined by two
// weight matrices and no bias terms:
//
//	hidden = act(Wih · x)
//	output = act(Who · hidden)
//
// Train performs one step of online backpropagation for a single
// input/target pair and updates both weight matrices in place. Query runs
// the forward pass only.
//
// Example:
//
//	net, err := nn.New(3, 3, 3, 0.3, wih, who)
//	if err != nil {
//	    return err
//	}
//	if err := net.Train([]float64{1, 0.5, -1.5}, []float64{1, 0.5, -1.5}); err != nil {
//	    return err
//	}
//	out, err := net.Query([]float64{1, 0.5, -1.5})
package nn

import (
	"fmt"
	"sync"

	"github.com/born-ml/tinynet/internal/tensor"
)

// Parameter names used by Network.
const (
	WeightsInputHiddenName  = "weights_input_hidden"
	WeightsHiddenOutputName = "weights_hidden_output"
)

// Config describes a network to build with NewFromConfig.
type Config struct {
	InputSize    int
	HiddenSize   int
	OutputSize   int
	LearningRate float64

	// InputHidden initializes the hiddenSize×inputSize matrix.
	InputHidden Initializer
	// HiddenOutput initializes the outputSize×hiddenSize matrix.
	HiddenOutput Initializer

	// Activation defaults to Sigmoid.
	Activation Activation
}

// Network is a three-layer feed-forward network.
//
// Weight shapes are fixed at construction. Query may be called
// concurrently; Train takes an exclusive lock for the duration of the step.
type Network struct {
	inputSize    int
	hiddenSize   int
	outputSize   int
	learningRate float64
	activation   Activation

	mu  sync.RWMutex
	wih *Parameter // [hidden, input]
	who *Parameter // [output, hidden]
}

// New creates a network from literal weight matrices.
//
// wih must be hiddenSize×inputSize and who must be outputSize×hiddenSize,
// otherwise ErrShapeMismatch is returned. The matrices are copied; the
// caller keeps no reference into the network's state.
func New(inputSize, hiddenSize, outputSize int, learningRate float64, wih, who *tensor.Matrix) (*Network, error) {
	return NewFromConfig(Config{
		InputSize:    inputSize,
		HiddenSize:   hiddenSize,
		OutputSize:   outputSize,
		LearningRate: learningRate,
		InputHidden:  Literal(wih),
		HiddenOutput: Literal(who),
	})
}

// NewFromConfig creates a network, drawing initial weights from the
// configured initializers.
func NewFromConfig(cfg Config) (*Network, error) {
	if cfg.InputSize <= 0 || cfg.HiddenSize <= 0 || cfg.OutputSize <= 0 {
		return nil, fmt.Errorf("%w: layer sizes must be > 0, got %d-%d-%d",
			ErrShapeMismatch, cfg.InputSize, cfg.HiddenSize, cfg.OutputSize)
	}
	if cfg.InputHidden == nil || cfg.HiddenOutput == nil {
		return nil, fmt.Errorf("%w: both weight initializers are required", ErrShapeMismatch)
	}
	if cfg.Activation == nil {
		cfg.Activation = Sigmoid{}
	}

	wih, err := cfg.InputHidden.Init(tensor.Shape{Rows: cfg.HiddenSize, Cols: cfg.InputSize})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", WeightsInputHiddenName, err)
	}
	who, err := cfg.HiddenOutput.Init(tensor.Shape{Rows: cfg.OutputSize, Cols: cfg.HiddenSize})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", WeightsHiddenOutputName, err)
	}

	return &Network{
		inputSize:    cfg.InputSize,
		hiddenSize:   cfg.HiddenSize,
		outputSize:   cfg.OutputSize,
		learningRate: cfg.LearningRate,
		activation:   cfg.Activation,
		wih:          NewParameter(WeightsInputHiddenName, wih),
		who:          NewParameter(WeightsHiddenOutputName, who),
	}, nil
}

// Query runs the forward pass and returns the output layer activations.
//
// Returns ErrDimension if len(inputs) != InputSize().
func (n *Network) Query(inputs []float64) ([]float64, error) {
	x, err := n.column(inputs, n.inputSize, "inputs")
	if err != nil {
		return nil, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	_, final := n.forward(x)
	return final.Column(0), nil
}

// Train performs one backpropagation step for a single sample and updates
// both weight matrices in place.
//
// Both vectors are validated before any arithmetic; on error the weights
// are unchanged.
func (n *Network) Train(inputs, targets []float64) error {
	x, err := n.column(inputs, n.inputSize, "inputs")
	if err != nil {
		return err
	}
	t, err := n.column(targets, n.outputSize, "targets")
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	hidden, final := n.forward(x)

	outputErr := t.Sub(final)
	// Must read Who before it is updated below.
	hiddenErr := n.who.view().T().MatMul(outputErr)

	outputGrad := outputErr.MulElem(final.Apply(n.activation.DerivativeFromOutput))
	n.who.Update(n.learningRate, outputGrad.MatMul(hidden.T()))

	hiddenGrad := hiddenErr.MulElem(hidden.Apply(n.activation.DerivativeFromOutput))
	n.wih.Update(n.learningRate, hiddenGrad.MatMul(x.T()))

	return nil
}

// forward returns the hidden and output activations for column vector x.
// Callers must hold n.mu.
func (n *Network) forward(x *tensor.Matrix) (hidden, final *tensor.Matrix) {
	hidden = n.wih.view().MatMul(x).Apply(n.activation.Forward)
	final = n.who.view().MatMul(hidden).Apply(n.activation.Forward)
	return hidden, final
}

func (n *Network) column(v []float64, size int, what string) (*tensor.Matrix, error) {
	if len(v) != size {
		return nil, fmt.Errorf("%w: %s has length %d, expected %d", ErrDimension, what, len(v), size)
	}
	return tensor.ColumnVector(v)
}

// InputSize returns the number of input nodes.
func (n *Network) InputSize() int {
	return n.inputSize
}

// HiddenSize returns the number of hidden nodes.
func (n *Network) HiddenSize() int {
	return n.hiddenSize
}

// OutputSize returns the number of output nodes.
func (n *Network) OutputSize() int {
	return n.outputSize
}

// LearningRate returns the learning rate used by Train.
func (n *Network) LearningRate() float64 {
	return n.learningRate
}

// WeightsInputHidden returns a copy of the hidden×input weight matrix.
func (n *Network) WeightsInputHidden() *tensor.Matrix {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.wih.Tensor()
}

// WeightsHiddenOutput returns a copy of the output×hidden weight matrix.
func (n *Network) WeightsHiddenOutput() *tensor.Matrix {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.who.Tensor()
}

// Parameters returns snapshots of the weight parameters in layer order.
// Updating a returned parameter does not affect the network.
func (n *Network) Parameters() []*Parameter {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return []*Parameter{
		NewParameter(n.wih.Name(), n.wih.Tensor()),
		NewParameter(n.who.Name(), n.who.Tensor()),
	}
}
