package nn

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/tinynet/internal/tensor"
)

// Initializer produces the initial values of a weight matrix.
//
// The network calls Init once per weight matrix at construction time with
// the shape it expects; the returned matrix becomes owned by the network.
type Initializer interface {
	Init(shape tensor.Shape) (*tensor.Matrix, error)
}

// Literal returns an Initializer that yields a copy of m.
//
// The shape of m is checked against the requested shape, so a literal that
// disagrees with the declared layer sizes fails with ErrShapeMismatch.
func Literal(m *tensor.Matrix) Initializer {
	return literal{m: m}
}

type literal struct {
	m *tensor.Matrix
}

func (l literal) Init(shape tensor.Shape) (*tensor.Matrix, error) {
	if l.m == nil {
		return nil, fmt.Errorf("%w: nil weight matrix, expected %v", ErrShapeMismatch, shape)
	}
	if !l.m.Shape().Equal(shape) {
		return nil, fmt.Errorf("%w: got %v, expected %v", ErrShapeMismatch, l.m.Shape(), shape)
	}
	return l.m.Clone(), nil
}

// Normal draws weights from a normal distribution.
//
// If Std is zero it defaults to 1/sqrt(rows), where rows is the size of the
// layer the weights feed into. Weights are drawn in row-major order, so two
// Normal initializers sharing a seed produce identical matrices.
//
// Example:
//
//	init := nn.NewNormal(42)
//	w, _ := init.Init(tensor.Shape{Rows: 3, Cols: 3})
type Normal struct {
	Mean   float64
	Std    float64
	Source rand.Source // nil uses the global math/rand/v2 source
}

// NewNormal creates a zero-mean Normal initializer with the default
// standard deviation and a PCG source seeded with seed.
func NewNormal(seed uint64) *Normal {
	return &Normal{
		Source: rand.NewPCG(seed, seed),
	}
}

// Init draws a matrix of the given shape.
func (n *Normal) Init(shape tensor.Shape) (*tensor.Matrix, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}

	std := n.Std
	if std == 0 {
		std = 1 / math.Sqrt(float64(shape.Rows))
	}
	if std < 0 {
		return nil, fmt.Errorf("normal initializer: negative standard deviation %v", std)
	}

	dist := distuv.Normal{Mu: n.Mean, Sigma: std, Src: n.Source}
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = dist.Rand()
	}
	return tensor.FromSlice(data, shape)
}
