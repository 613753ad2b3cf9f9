package linalg

import (
	"fmt"

	"github.com/michael-bauer-horsch/kmath/tensor"
)

// Cov computes the sample covariance matrix of k equally sized 1D tensors,
// returning a [k, k] tensor with the unbiased N-1 denominator. A single
// observation per series yields NaN entries, matching Variance.
func Cov(vectors []*tensor.Tensor) (*tensor.Tensor, error) {
	k := len(vectors)
	if k == 0 {
		return nil, fmt.Errorf("cov: no input vectors: %w", tensor.ErrShape)
	}
	n := vectors[0].NumElements()
	for i, v := range vectors {
		if v.Rank() != 1 {
			return nil, fmt.Errorf("cov: vector %d has rank %d, want 1: %w", i, v.Rank(), tensor.ErrDim)
		}
		if v.NumElements() != n {
			return nil, fmt.Errorf("cov: vector %d has %d elements, want %d: %w",
				i, v.NumElements(), n, tensor.ErrShapeMismatch)
		}
	}

	means := make([]float64, k)
	for i, v := range vectors {
		var sum float64
		for _, x := range v.Data() {
			sum += x
		}
		means[i] = sum / float64(n)
	}

	out := mustZeros(tensor.Shape{k, k})
	c := out.Data()
	for i := 0; i < k; i++ {
		di := vectors[i].Data()
		for j := i; j < k; j++ {
			dj := vectors[j].Data()
			var acc float64
			for t := 0; t < n; t++ {
				acc += (di[t] - means[i]) * (dj[t] - means[j])
			}
			cov := acc / float64(n-1)
			c[i*k+j] = cov
			c[j*k+i] = cov
		}
	}
	return out, nil
}
