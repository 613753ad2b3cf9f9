package linalg

import (
	"fmt"
	"math"

	"github.com/michael-bauer-horsch/kmath/internal/parallel"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

// LUFactor computes the partially pivoted LU factorization of every batch
// matrix: P·A = L·U with L unit lower triangular and U upper triangular.
//
// The returned lu tensor packs both factors (L strictly below the
// diagonal, U on and above); pivots records, per elimination step, the row
// swapped into the pivot position, stored float-valued to stay within the
// single-dtype model. If the best available pivot magnitude falls below
// epsilon (default 1e-9) the call fails with a SingularError carrying that
// epsilon.
func LUFactor(t *tensor.Tensor, epsilon ...float64) (lu, pivots *tensor.Tensor, err error) {
	eps := epsOrDefault(epsilon, DefaultEpsilon)
	seq, err := squareMatrices("lu factor", t)
	if err != nil {
		return nil, nil, err
	}
	n := seq.Rows()

	lu = t.Copy()
	pivots = mustZeros(batchedShape(seq.BatchShape(), n))
	luSeq, _ := lu.Matrices()
	pivVecs := pivots.Vectors()

	err = parallel.ForErr(seq.Len(), func(b int) error {
		return luFactorSlice(luSeq.At(b).Data(), pivVecs.At(b).Data(), n, eps)
	}, workers)
	if err != nil {
		return nil, nil, fmt.Errorf("lu factor: %w", err)
	}
	return lu, pivots, nil
}

// luFactorSlice runs partially pivoted Gaussian elimination in place on a
// flat n-by-n matrix, recording the chosen pivot row per step.
func luFactorSlice(m, piv []float64, n int, eps float64) error {
	for k := 0; k < n; k++ {
		// Select the row maximizing |m[i][k]| for i >= k.
		best := k
		bestAbs := math.Abs(m[k*n+k])
		for i := k + 1; i < n; i++ {
			if abs := math.Abs(m[i*n+k]); abs > bestAbs {
				best = i
				bestAbs = abs
			}
		}
		if bestAbs < eps {
			return &SingularError{Epsilon: eps}
		}
		piv[k] = float64(best)
		if best != k {
			for j := 0; j < n; j++ {
				m[k*n+j], m[best*n+j] = m[best*n+j], m[k*n+j]
			}
		}

		pivot := m[k*n+k]
		for i := k + 1; i < n; i++ {
			factor := m[i*n+k] / pivot
			m[i*n+k] = factor
			for j := k + 1; j < n; j++ {
				m[i*n+j] -= factor * m[k*n+j]
			}
		}
	}
	return nil
}

// LUPivot unpacks a packed factorization into explicit (P, L, U) tensors
// satisfying P·A = L·U, with P rebuilt from the pivot indices and L
// carrying a unit diagonal.
func LUPivot(lu, pivots *tensor.Tensor) (p, l, u *tensor.Tensor, err error) {
	seq, err := squareMatrices("lu pivot", lu)
	if err != nil {
		return nil, nil, nil, err
	}
	n := seq.Rows()
	if pivots.NumElements() != seq.Len()*n {
		return nil, nil, nil, fmt.Errorf("lu pivot: pivot tensor holds %d entries, want %d: %w",
			pivots.NumElements(), seq.Len()*n, tensor.ErrShapeMismatch)
	}

	p = mustZeros(lu.Shape().Clone())
	l = mustZeros(lu.Shape().Clone())
	u = mustZeros(lu.Shape().Clone())
	pSeq, _ := p.Matrices()
	lSeq, _ := l.Matrices()
	uSeq, _ := u.Matrices()
	pivVecs := pivots.Vectors()

	parallel.For(seq.Len(), func(b int) {
		src := seq.At(b).Data()
		pm := pSeq.At(b).Data()
		lm := lSeq.At(b).Data()
		um := uSeq.At(b).Data()

		// Replay the recorded swaps against the identity permutation:
		// perm[i] is the original row that ended up in position i.
		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		piv := pivVecs.At(b).Data()
		for k := 0; k < n; k++ {
			r := int(piv[k])
			perm[k], perm[r] = perm[r], perm[k]
		}
		// Row i of P·A is row perm[i] of A.
		for i := 0; i < n; i++ {
			pm[i*n+perm[i]] = 1
		}

		for i := 0; i < n; i++ {
			lm[i*n+i] = 1
			for j := 0; j < i; j++ {
				lm[i*n+j] = src[i*n+j]
			}
			for j := i; j < n; j++ {
				um[i*n+j] = src[i*n+j]
			}
		}
	}, workers)

	return p, l, u, nil
}

// LU is the combination of LUFactor and LUPivot: it factors t and returns
// the unpacked (P, L, U) triple with P·A = L·U.
func LU(t *tensor.Tensor, epsilon ...float64) (p, l, u *tensor.Tensor, err error) {
	lu, pivots, err := LUFactor(t, epsilon...)
	if err != nil {
		return nil, nil, nil, err
	}
	return LUPivot(lu, pivots)
}

// Det computes the determinant of every batch matrix via LU: the product
// of U's diagonal times the permutation sign. A matrix detected singular
// during elimination contributes 0.0 rather than an error. The result has
// one value per batch matrix; a batch-free input yields shape [1].
func Det(t *tensor.Tensor, epsilon ...float64) (*tensor.Tensor, error) {
	eps := epsOrDefault(epsilon, DefaultEpsilon)
	seq, err := squareMatrices("det", t)
	if err != nil {
		return nil, err
	}
	n := seq.Rows()

	result := mustZeros(scalarShape(seq.BatchShape()))
	out := result.Data()

	parallel.For(seq.Len(), func(b int) {
		m := make([]float64, n*n)
		copy(m, seq.At(b).Data())
		piv := make([]float64, n)
		if err := luFactorSlice(m, piv, n, eps); err != nil {
			out[b] = 0.0
			return
		}

		det := 1.0
		for i := 0; i < n; i++ {
			det *= m[i*n+i]
		}
		for k := 0; k < n; k++ {
			if int(piv[k]) != k {
				det = -det
			}
		}
		out[b] = det
	}, workers)

	return result, nil
}

// Inv computes the inverse of every batch matrix by solving A·X = I
// columnwise against the packed LU factorization. Fails with a
// SingularError under the same condition as LUFactor.
func Inv(t *tensor.Tensor, epsilon ...float64) (*tensor.Tensor, error) {
	lu, pivots, err := LUFactor(t, epsilon...)
	if err != nil {
		return nil, fmt.Errorf("inv: %w", err)
	}
	seq, _ := lu.Matrices()
	n := seq.Rows()

	result := mustZeros(t.Shape().Clone())
	outSeq, _ := result.Matrices()
	pivVecs := pivots.Vectors()

	parallel.For(seq.Len(), func(b int) {
		m := seq.At(b).Data()
		piv := pivVecs.At(b).Data()
		inv := outSeq.At(b).Data()

		perm := make([]int, n)
		for i := range perm {
			perm[i] = i
		}
		for k := 0; k < n; k++ {
			r := int(piv[k])
			perm[k], perm[r] = perm[r], perm[k]
		}

		y := make([]float64, n)
		for col := 0; col < n; col++ {
			// Forward substitution L·y = P·e_col with unit diagonal.
			for i := 0; i < n; i++ {
				sum := 0.0
				for k := 0; k < i; k++ {
					sum += m[i*n+k] * y[k]
				}
				e := 0.0
				if perm[i] == col {
					e = 1.0
				}
				y[i] = e - sum
			}
			// Backward substitution U·x = y, written into column col.
			for i := n - 1; i >= 0; i-- {
				sum := 0.0
				for k := i + 1; k < n; k++ {
					sum += m[i*n+k] * inv[k*n+col]
				}
				inv[i*n+col] = (y[i] - sum) / m[i*n+i]
			}
		}
	}, workers)

	return result, nil
}
