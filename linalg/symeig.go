package linalg

import (
	"fmt"
	"math"

	"github.com/michael-bauer-horsch/kmath/internal/parallel"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

// SymEig computes eigenvalues and eigenvectors of every symmetric batch
// matrix, returning ([..., n] eigenvalues, [..., n, n] eigenvectors) with
// A·vecs = vecs·diag(vals). Epsilon (default 1e-15) bounds both the
// symmetry check and the underlying SVD convergence; asymmetric input is
// rejected with ErrNotSymmetric.
//
// For symmetric A the SVD satisfies A = U·diag(S)·Vᵗ with U = V·sign(Λ),
// so the diagonal of Uᵗ·V recovers the eigenvalue signs and V the
// eigenvectors. Like SVD, the eigenvalues are not ordered.
func SymEig(t *tensor.Tensor, epsilon ...float64) (vals, vecs *tensor.Tensor, err error) {
	eps := epsOrDefault(epsilon, DefaultSymEigEpsilon)
	seq, err := squareMatrices("symeig", t)
	if err != nil {
		return nil, nil, err
	}
	if err := checkSymmetric("symeig", seq, eps); err != nil {
		return nil, nil, err
	}

	u, s, v, err := SVD(t, eps)
	if err != nil {
		return nil, nil, fmt.Errorf("symeig: %w", err)
	}

	n := seq.Cols()
	vals = mustZeros(batchedShape(seq.BatchShape(), n))
	uSeq, _ := u.Matrices()
	sVecs := s.Vectors()
	vSeq, _ := v.Matrices()
	valVecs := vals.Vectors()

	parallel.For(seq.Len(), func(b int) {
		symEigValues(valVecs.At(b).Data(), uSeq.At(b).Data(),
			sVecs.At(b).Data(), vSeq.At(b).Data(), n)
	}, workers)

	return vals, v, nil
}

// symEigValues restores eigenvalue signs from the diagonal of Uᵗ·V. The
// raw diagonal entries are ±1 up to factorization noise, so they are
// snapped before scaling the singular values.
func symEigValues(vals, u, s, v []float64, n int) {
	ut := make([]float64, n*n)
	transposeSquare(ut, u, n)
	d := make([]float64, n*n)
	matmul(d, ut, v, n, n, n)

	for i := 0; i < n; i++ {
		sign := d[i*n+i]
		switch {
		case sign > 0.5:
			sign = 1
		case sign < -0.5:
			sign = -1
		default:
			sign = 0
		}
		vals[i] = sign * s[i]
		if sign == 0 && s[i] != 0 {
			// Degenerate singular subspaces can rotate U against V;
			// fall back to whatever sign survives on the diagonal.
			vals[i] = math.Copysign(s[i], d[i*n+i])
		}
	}
}
