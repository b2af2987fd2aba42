package tensor

import "errors"

var (
	// ErrInvalidShape is returned when a dimension is zero or negative.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrShapeMismatch is returned when supplied data does not fit the
	// requested shape, or when rows of a literal matrix differ in length.
	ErrShapeMismatch = errors.New("shape mismatch")
)
