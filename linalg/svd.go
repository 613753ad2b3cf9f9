package linalg

import (
	"fmt"
	"math"

	"github.com/michael-bauer-horsch/kmath/internal/parallel"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

// maxJacobiSweeps bounds the Jacobi iteration regardless of the epsilon
// convergence test, so numerically pathological input cannot spin the
// sweep loop forever.
const maxJacobiSweeps = 60

// SVD computes the singular value decomposition of every batch matrix
// using one-sided Jacobi rotations: A = U·diag(S)·Vᵗ with thin U
// ([..., m, min(m,n)]), non-negative S ([..., min(m,n)]) and thin V
// ([..., n, min(m,n)]).
//
// Epsilon (default 1e-10) bounds the off-diagonal convergence criterion of
// the column rotations. The iterative method does NOT order the singular
// values; callers needing a descending spectrum must sort on their own.
func SVD(t *tensor.Tensor, epsilon ...float64) (u, s, v *tensor.Tensor, err error) {
	eps := epsOrDefault(epsilon, DefaultSVDEpsilon)
	seq, err := t.Matrices()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("svd: %w", err)
	}
	m, n := seq.Rows(), seq.Cols()
	minDim := min(m, n)
	batch := seq.BatchShape()

	u = mustZeros(batchedShape(batch, m, minDim))
	s = mustZeros(batchedShape(batch, minDim))
	v = mustZeros(batchedShape(batch, n, minDim))
	uSeq, _ := u.Matrices()
	sVecs := s.Vectors()
	vSeq, _ := v.Matrices()

	parallel.For(seq.Len(), func(b int) {
		svdSlice(uSeq.At(b).Data(), sVecs.At(b).Data(), vSeq.At(b).Data(),
			seq.At(b).Data(), m, n, eps)
	}, workers)

	return u, s, v, nil
}

// svdSlice factors one flat m-by-n matrix. For m < n it factors the
// transpose and swaps the roles of u and v on output.
func svdSlice(u, s, v, a []float64, m, n int, eps float64) {
	if m < n {
		at := make([]float64, m*n)
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				at[j*m+i] = a[i*n+j]
			}
		}
		// Aᵗ = Ũ·diag(S)·Ṽᵗ implies A = Ṽ·diag(S)·Ũᵗ.
		svdSlice(v, s, u, at, n, m, eps)
		return
	}

	// Work on a column copy of A; vt accumulates the right rotations.
	b := make([]float64, m*n)
	copy(b, a)
	vt := make([]float64, n*n)
	for i := 0; i < n; i++ {
		vt[i*n+i] = 1
	}

	for sweep := 0; sweep < maxJacobiSweeps; sweep++ {
		rotated := false
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				var alpha, beta, gamma float64
				for i := 0; i < m; i++ {
					alpha += b[i*n+p] * b[i*n+p]
					beta += b[i*n+q] * b[i*n+q]
					gamma += b[i*n+p] * b[i*n+q]
				}
				if gamma == 0 || math.Abs(gamma) <= eps*math.Sqrt(alpha*beta) {
					continue
				}
				rotated = true

				zeta := (beta - alpha) / (2 * gamma)
				t := math.Copysign(1, zeta) / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				c := 1 / math.Sqrt(1+t*t)
				sn := c * t

				for i := 0; i < m; i++ {
					bp := b[i*n+p]
					bq := b[i*n+q]
					b[i*n+p] = c*bp - sn*bq
					b[i*n+q] = sn*bp + c*bq
				}
				for i := 0; i < n; i++ {
					vp := vt[i*n+p]
					vq := vt[i*n+q]
					vt[i*n+p] = c*vp - sn*vq
					vt[i*n+q] = sn*vp + c*vq
				}
			}
		}
		if !rotated {
			break
		}
	}

	// Column norms are the singular values; normalized columns form U.
	for k := 0; k < n; k++ {
		var norm float64
		for i := 0; i < m; i++ {
			norm += b[i*n+k] * b[i*n+k]
		}
		norm = math.Sqrt(norm)
		s[k] = norm
		if norm > 0 {
			for i := 0; i < m; i++ {
				u[i*n+k] = b[i*n+k] / norm
			}
		}
	}
	copy(v, vt)
}
