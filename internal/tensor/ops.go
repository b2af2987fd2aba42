package tensor

import (
	"fmt"
	"sync/atomic"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/tinynet/internal/parallel"
)

var parallelConfig atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	parallelConfig.Store(&cfg)
}

// SetParallelConfig replaces the fan-out settings used by MatMul and Apply.
func SetParallelConfig(cfg parallel.Config) {
	parallelConfig.Store(&cfg)
}

// ParallelConfig returns the current fan-out settings.
func ParallelConfig() parallel.Config {
	return *parallelConfig.Load()
}

// MatMul returns the matrix product m · other.
//
// Output rows are independent, so large products are split by row ranges
// across workers; each worker writes a disjoint slice of the result.
//
// Panics if m.Cols() != other.Rows().
func (m *Matrix) MatMul(other *Matrix) *Matrix {
	r, k := m.dense.Dims()
	k2, c := other.dense.Dims()
	if k != k2 {
		panic(fmt.Sprintf("tensor.MatMul: inner dimensions differ: %v · %v", m.Shape(), other.Shape()))
	}

	dst := mat.NewDense(r, c, nil)
	parallel.ForRange(r, func(start, end int) {
		//nolint:forcetypeassert // Slice of *mat.Dense is always *mat.Dense
		rows := dst.Slice(start, end, 0, c).(*mat.Dense)
		rows.Mul(m.dense.Slice(start, end, 0, k), other.dense)
	}, ParallelConfig())
	return wrap(dst)
}

// T returns the transpose of m as a new matrix.
func (m *Matrix) T() *Matrix {
	return wrap(mat.DenseCopyOf(m.dense.T()))
}

// Add returns m + other element-wise.
func (m *Matrix) Add(other *Matrix) *Matrix {
	m.mustMatch("Add", other)
	var dst mat.Dense
	dst.Add(m.dense, other.dense)
	return wrap(&dst)
}

// Sub returns m - other element-wise.
func (m *Matrix) Sub(other *Matrix) *Matrix {
	m.mustMatch("Sub", other)
	var dst mat.Dense
	dst.Sub(m.dense, other.dense)
	return wrap(&dst)
}

// MulElem returns the Hadamard product m ⊙ other.
func (m *Matrix) MulElem(other *Matrix) *Matrix {
	m.mustMatch("MulElem", other)
	var dst mat.Dense
	dst.MulElem(m.dense, other.dense)
	return wrap(&dst)
}

// Scale returns f · m.
func (m *Matrix) Scale(f float64) *Matrix {
	var dst mat.Dense
	dst.Scale(f, m.dense)
	return wrap(&dst)
}

// Apply returns a new matrix with fn applied to every element.
func (m *Matrix) Apply(fn func(float64) float64) *Matrix {
	r, c := m.dense.Dims()
	dst := mat.NewDense(r, c, nil)
	parallel.For(r, func(i int) {
		out := dst.RawRowView(i)
		for j, v := range m.dense.RawRowView(i) {
			out[j] = fn(v)
		}
	}, ParallelConfig())
	return wrap(dst)
}

// AddScaled adds alpha · other to m in place.
// This is the only operation that mutates its receiver.
func (m *Matrix) AddScaled(alpha float64, other *Matrix) {
	m.mustMatch("AddScaled", other)
	var delta mat.Dense
	delta.Scale(alpha, other.dense)
	m.dense.Add(m.dense, &delta)
}

func (m *Matrix) mustMatch(op string, other *Matrix) {
	if !m.Shape().Equal(other.Shape()) {
		panic(fmt.Sprintf("tensor.%s: shape mismatch: %v vs %v", op, m.Shape(), other.Shape()))
	}
}
