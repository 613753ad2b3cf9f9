package linalg

import (
	"fmt"
	"math"

	"github.com/michael-bauer-horsch/kmath/internal/parallel"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

// Cholesky factors every batch matrix as A = L·Lᵗ with L lower
// triangular, via the column-by-column forward recurrence.
//
// The input must be square and symmetric within epsilon (default 1e-6),
// ErrNotSymmetric otherwise; a diagonal term of at most epsilon during the
// recurrence means the matrix is not positive definite at that precision
// and the call fails with ErrNotPositiveDefinite.
func Cholesky(t *tensor.Tensor, epsilon ...float64) (*tensor.Tensor, error) {
	eps := epsOrDefault(epsilon, DefaultCholeskyEpsilon)
	seq, err := squareMatrices("cholesky", t)
	if err != nil {
		return nil, err
	}
	if err := checkSymmetric("cholesky", seq, eps); err != nil {
		return nil, err
	}
	n := seq.Rows()

	result := mustZeros(t.Shape().Clone())
	outSeq, _ := result.Matrices()

	err = parallel.ForErr(seq.Len(), func(b int) error {
		a := seq.At(b).Data()
		l := outSeq.At(b).Data()

		for j := 0; j < n; j++ {
			diag := a[j*n+j]
			for k := 0; k < j; k++ {
				diag -= l[j*n+k] * l[j*n+k]
			}
			if diag <= eps {
				return fmt.Errorf("diagonal term %g at column %d is below epsilon %g: %w",
					diag, j, eps, ErrNotPositiveDefinite)
			}
			l[j*n+j] = math.Sqrt(diag)

			for i := j + 1; i < n; i++ {
				sum := a[i*n+j]
				for k := 0; k < j; k++ {
					sum -= l[i*n+k] * l[j*n+k]
				}
				l[i*n+j] = sum / l[j*n+j]
			}
		}
		return nil
	}, workers)
	if err != nil {
		return nil, fmt.Errorf("cholesky: %w", err)
	}
	return result, nil
}
