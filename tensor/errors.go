package tensor

import "errors"

// Sentinel errors returned by tensor operations. Callers match them with
// errors.Is; functions wrap them with operation context via fmt.Errorf.
var (
	// ErrShape is returned when a requested shape is invalid: empty, a
	// non-positive dimension, or an element count that does not match the
	// supplied data.
	ErrShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch is returned when two operand shapes are not
	// broadcast-compatible, or when an operation requires equal shapes.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrDim is returned when a dimension argument is outside [0, rank).
	ErrDim = errors.New("tensor: dimension out of range")

	// ErrIndex is returned when a multi-index component is outside the
	// tensor's bounds.
	ErrIndex = errors.New("tensor: index out of range")

	// ErrScalarAccess is returned by Value on a tensor whose shape is not
	// exactly [1].
	ErrScalarAccess = errors.New("tensor: not a scalar")
)
