package nn

import "errors"

var (
	// ErrShapeMismatch is returned by the constructors when a layer size is
	// not positive or a weight matrix does not match the declared sizes.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDimension is returned by Query and Train when an input or target
	// vector length differs from the corresponding layer size.
	ErrDimension = errors.New("dimension mismatch")
)
