package linalg

import (
	"fmt"
	"math"

	"github.com/michael-bauer-horsch/kmath/internal/parallel"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

// Default convergence and singularity thresholds. These are part of the
// public contract: callers relying on the no-epsilon forms get exactly
// these values.
const (
	// DefaultEpsilon is the pivot threshold for LU-based operations.
	DefaultEpsilon = 1e-9
	// DefaultCholeskyEpsilon bounds the symmetry and positivity checks of
	// Cholesky.
	DefaultCholeskyEpsilon = 1e-6
	// DefaultSVDEpsilon bounds the off-diagonal convergence criterion of
	// the Jacobi SVD sweeps.
	DefaultSVDEpsilon = 1e-10
	// DefaultSymEigEpsilon is the SVD tolerance used by the symmetric
	// eigendecomposition.
	DefaultSymEigEpsilon = 1e-15
)

func epsOrDefault(epsilon []float64, def float64) float64 {
	if len(epsilon) > 0 {
		return epsilon[0]
	}
	return def
}

// workers is the shared fan-out configuration for batched kernels.
var workers = parallel.DefaultConfig()

// squareMatrices sequences t as a batch of matrices and enforces that they
// are square.
func squareMatrices(op string, t *tensor.Tensor) (*tensor.MatrixSeq, error) {
	seq, err := t.Matrices()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if seq.Rows() != seq.Cols() {
		return nil, fmt.Errorf("%s: matrix is %dx%d, need square: %w",
			op, seq.Rows(), seq.Cols(), tensor.ErrShapeMismatch)
	}
	return seq, nil
}

// checkSymmetric verifies |a[i][j]-a[j][i]| <= eps for every batch matrix.
func checkSymmetric(op string, seq *tensor.MatrixSeq, eps float64) error {
	n := seq.Rows()
	for b := 0; b < seq.Len(); b++ {
		m := seq.At(b).Data()
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if math.Abs(m[i*n+j]-m[j*n+i]) > eps {
					return fmt.Errorf("%s: |a[%d][%d]-a[%d][%d]| = %g exceeds epsilon %g: %w",
						op, i, j, j, i, math.Abs(m[i*n+j]-m[j*n+i]), eps, ErrNotSymmetric)
				}
			}
		}
	}
	return nil
}

// batchedShape builds the output shape batch + [dims...].
func batchedShape(batch tensor.Shape, dims ...int) tensor.Shape {
	out := make(tensor.Shape, 0, len(batch)+len(dims))
	out = append(out, batch...)
	out = append(out, dims...)
	return out
}

// scalarShape turns a batch shape into a result shape for one value per
// matrix; a batch-free input collapses to the scalar shape [1].
func scalarShape(batch tensor.Shape) tensor.Shape {
	if len(batch) == 0 {
		return tensor.Shape{1}
	}
	return batch.Clone()
}

// mustZeros allocates a fresh tensor for a shape assembled internally.
func mustZeros(shape tensor.Shape) *tensor.Tensor {
	t, err := tensor.Zeros(shape)
	if err != nil {
		panic(fmt.Sprintf("linalg: internal shape %v invalid: %v", shape, err))
	}
	return t
}
