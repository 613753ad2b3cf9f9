package linalg

import (
	"math"

	"github.com/michael-bauer-horsch/kmath/internal/parallel"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

// QR factors every batch matrix as A = Q·R with Q orthogonal and R upper
// triangular, using Householder reflections. The input must be square.
func QR(t *tensor.Tensor) (q, r *tensor.Tensor, err error) {
	seq, err := squareMatrices("qr", t)
	if err != nil {
		return nil, nil, err
	}
	n := seq.Rows()

	r = t.Copy()
	q = mustZeros(t.Shape().Clone())
	rSeq, _ := r.Matrices()
	qSeq, _ := q.Matrices()

	parallel.For(seq.Len(), func(b int) {
		qrSlice(qSeq.At(b).Data(), rSeq.At(b).Data(), n)
	}, workers)

	return q, r, nil
}

// qrSlice reduces the flat n-by-n matrix a to upper triangular form in
// place, accumulating the orthogonal factor into q.
func qrSlice(q, a []float64, n int) {
	// Start Q from the identity.
	for i := 0; i < n; i++ {
		q[i*n+i] = 1
	}
	v := make([]float64, n)

	for k := 0; k < n; k++ {
		norm := 0.0
		for i := k; i < n; i++ {
			norm += a[i*n+k] * a[i*n+k]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}

		alpha := -math.Copysign(norm, a[k*n+k])
		for i := 0; i < k; i++ {
			v[i] = 0
		}
		for i := k; i < n; i++ {
			v[i] = a[i*n+k]
		}
		v[k] -= alpha

		beta := 0.0
		for i := k; i < n; i++ {
			beta += v[i] * v[i]
		}
		if beta == 0 {
			continue
		}
		tau := 2.0 / beta

		// Reflect the remaining columns of A.
		for j := k; j < n; j++ {
			sum := 0.0
			for i := k; i < n; i++ {
				sum += v[i] * a[i*n+j]
			}
			for i := k; i < n; i++ {
				a[i*n+j] -= tau * v[i] * sum
			}
		}

		// Accumulate the reflection into Q. The elimination applies
		// H_k · ... · H_1 · A = R, so Q = H_1 · ... · H_k; right-applying
		// each H (columns update) builds exactly that product.
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := k; j < n; j++ {
				sum += q[i*n+j] * v[j]
			}
			for j := k; j < n; j++ {
				q[i*n+j] -= tau * sum * v[j]
			}
		}
	}
}
