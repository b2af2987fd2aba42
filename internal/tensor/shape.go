package tensor

import "fmt"

// Shape holds the dimensions of a two-dimensional matrix.
type Shape struct {
	Rows int
	Cols int
}

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: %v (dimensions must be > 0)", ErrInvalidShape, s)
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// T returns the shape of the transposed matrix.
func (s Shape) T() Shape {
	return Shape{Rows: s.Cols, Cols: s.Rows}
}

// String renders the shape as "rows×cols".
func (s Shape) String() string {
	return fmt.Sprintf("%d×%d", s.Rows, s.Cols)
}
