// Package tensor provides the dense float64 matrix used by tinynet.
//
// Matrix wraps a gonum mat.Dense and exposes the handful of linear-algebra
// operations a three-layer network needs: matrix product, transpose,
// element-wise arithmetic and an in-place scaled add for weight updates.
//
// All operations except AddScaled return a new matrix and leave their
// operands untouched. Shapes are fixed for the lifetime of a matrix.
//
// Example:
//
//	w, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	x, _ := tensor.ColumnVector([]float64{1, 1})
//	y := w.MatMul(x) // shape 2×1: [3, 7]
package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a two-dimensional array of float64 values with fixed shape.
type Matrix struct {
	dense *mat.Dense
}

// Zeros creates a zero-filled matrix.
func Zeros(shape Shape) (*Matrix, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Matrix{dense: mat.NewDense(shape.Rows, shape.Cols, nil)}, nil
}

// FromSlice creates a matrix from row-major data.
// The slice is copied into the matrix's memory.
func FromSlice(data []float64, shape Shape) (*Matrix, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}

	buf := make([]float64, len(data))
	copy(buf, data)
	return &Matrix{dense: mat.NewDense(shape.Rows, shape.Cols, buf)}, nil
}

// FromRows creates a matrix from a literal slice of rows.
// Every row must have the same, non-zero length.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidShape)
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, row 0 has %d",
				ErrShapeMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return FromSlice(data, Shape{Rows: len(rows), Cols: cols})
}

// ColumnVector creates an n×1 matrix from v.
func ColumnVector(v []float64) (*Matrix, error) {
	return FromSlice(v, Shape{Rows: len(v), Cols: 1})
}

// MustFromRows is like FromRows but panics on error.
// Intended for literal matrices in tests and program setup.
func MustFromRows(rows [][]float64) *Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func wrap(d *mat.Dense) *Matrix {
	return &Matrix{dense: d}
}

// Shape returns the matrix dimensions.
func (m *Matrix) Shape() Shape {
	r, c := m.dense.Dims()
	return Shape{Rows: r, Cols: c}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	r, _ := m.dense.Dims()
	return r
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	_, c := m.dense.Dims()
	return c
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Data returns a row-major copy of the matrix elements.
func (m *Matrix) Data() []float64 {
	r, c := m.dense.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		out = append(out, m.dense.RawRowView(i)...)
	}
	return out
}

// ToRows returns a copy of the matrix as a slice of rows.
func (m *Matrix) ToRows() [][]float64 {
	r, c := m.dense.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		copy(out[i], m.dense.RawRowView(i))
	}
	return out
}

// Column returns a copy of column j.
func (m *Matrix) Column(j int) []float64 {
	return mat.Col(nil, j, m.dense)
}

// Clone returns a deep copy that shares no memory with m.
func (m *Matrix) Clone() *Matrix {
	return wrap(mat.DenseCopyOf(m.dense))
}

// Equal reports whether both matrices have the same shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	return mat.Equal(m.dense, other.dense)
}

// EqualApprox reports whether both matrices have the same shape and all
// elements are within tol of each other (absolute or relative).
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	return mat.EqualApprox(m.dense, other.dense, tol)
}

// String formats the matrix with gonum's pretty printer.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Squeeze()))
}
