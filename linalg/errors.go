package linalg

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural precondition violations. Callers match
// them with errors.Is.
var (
	// ErrSingular is reported when partial pivoting cannot find a pivot
	// above the working epsilon. Returned wrapped inside a SingularError.
	ErrSingular = errors.New("linalg: matrix is singular")

	// ErrNotPositiveDefinite is reported by Cholesky when the
	// factorization recurrence meets a non-positive diagonal term.
	ErrNotPositiveDefinite = errors.New("linalg: matrix is not positive definite")

	// ErrNotSymmetric is reported when an operation requiring a symmetric
	// matrix observes asymmetry beyond the working epsilon.
	ErrNotSymmetric = errors.New("linalg: matrix is not symmetric")
)

// SingularError reports a singular matrix together with the epsilon under
// which the pivot was judged zero. It unwraps to ErrSingular.
type SingularError struct {
	Epsilon float64
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("linalg: matrix is singular (max pivot below epsilon %g)", e.Epsilon)
}

func (e *SingularError) Unwrap() error {
	return ErrSingular
}
