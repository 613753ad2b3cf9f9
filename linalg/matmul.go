package linalg

import (
	"fmt"

	"github.com/michael-bauer-horsch/kmath/internal/parallel"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

// Dot performs matrix multiplication over the trailing two dimensions,
// broadcasting batch dimensions under the element-wise rules.
//
// Supported operand ranks:
//   - 1-D · 1-D: inner product, result shape [1]
//   - N-D · 1-D: matrix-vector product, result drops the column dimension
//   - 1-D · N-D: vector-matrix product, result drops the row dimension
//   - N-D · M-D: batched matrix product [..., m, k] · [..., k, n] -> [..., m, n]
//
// Incompatible inner or batch dimensions yield ErrShapeMismatch.
func Dot(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	ra, rb := a.Rank(), b.Rank()
	switch {
	case ra == 1 && rb == 1:
		return dotVectors(a, b)
	case rb == 1:
		k := b.Shape()[0]
		bm, err := b.View(tensor.Shape{k, 1})
		if err != nil {
			return nil, fmt.Errorf("dot: %w", err)
		}
		out, err := dotMatrices(a, bm)
		if err != nil {
			return nil, err
		}
		// [..., m, 1] -> [..., m]
		shape := out.Shape()
		return out.View(shape[:len(shape)-1].Clone())
	case ra == 1:
		k := a.Shape()[0]
		am, err := a.View(tensor.Shape{1, k})
		if err != nil {
			return nil, fmt.Errorf("dot: %w", err)
		}
		out, err := dotMatrices(am, b)
		if err != nil {
			return nil, err
		}
		// [..., 1, n] -> [..., n]
		shape := out.Shape()
		squeezed := append(shape[:len(shape)-2].Clone(), shape[len(shape)-1])
		return out.View(squeezed)
	default:
		return dotMatrices(a, b)
	}
}

func dotVectors(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	if a.Shape()[0] != b.Shape()[0] {
		return nil, fmt.Errorf("dot: vector lengths %d and %d differ: %w",
			a.Shape()[0], b.Shape()[0], tensor.ErrShapeMismatch)
	}
	av, bv := a.Data(), b.Data()
	var sum float64
	for i := range av {
		sum += av[i] * bv[i]
	}
	return tensor.FromSlice([]float64{sum}, tensor.Shape{1})
}

func dotMatrices(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	aSeq, err := a.Matrices()
	if err != nil {
		return nil, fmt.Errorf("dot: %w", err)
	}
	bSeq, err := b.Matrices()
	if err != nil {
		return nil, fmt.Errorf("dot: %w", err)
	}

	m, k := aSeq.Rows(), aSeq.Cols()
	if bSeq.Rows() != k {
		return nil, fmt.Errorf("dot: inner dimensions %d and %d differ: %w",
			k, bSeq.Rows(), tensor.ErrShapeMismatch)
	}
	n := bSeq.Cols()

	batch, _, err := tensor.BroadcastShapes(aSeq.BatchShape(), bSeq.BatchShape())
	if err != nil {
		return nil, fmt.Errorf("dot: batch dimensions: %w", err)
	}

	result := mustZeros(batchedShape(batch, m, n))
	outSeq, _ := result.Matrices()

	parallel.For(outSeq.Len(), func(g int) {
		am := aSeq.At(broadcastSliceIndex(g, batch, aSeq.BatchShape()))
		bm := bSeq.At(broadcastSliceIndex(g, batch, bSeq.BatchShape()))
		matmul(outSeq.At(g).Data(), am.Data(), bm.Data(), m, k, n)
	}, workers)

	return result, nil
}

// matmul computes c = a·b for row-major flat matrices.
// C[i,j] = sum_k A[i,k] * B[k,j].
func matmul(c, a, b []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for x := 0; x < k; x++ {
				sum += a[i*k+x] * b[x*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// broadcastSliceIndex maps a flat index over the broadcast batch shape to
// the corresponding flat index over an operand's (possibly smaller) batch
// shape: dimensions align from the trailing end, size-1 dimensions clamp
// to coordinate 0.
func broadcastSliceIndex(flat int, batch, inBatch tensor.Shape) int {
	if len(inBatch) == 0 {
		return 0
	}
	inStrides := inBatch.ComputeStrides()
	pad := len(batch) - len(inBatch)

	idx := 0
	for i := len(batch) - 1; i >= 0; i-- {
		coord := flat % batch[i]
		flat /= batch[i]
		inDim := i - pad
		if inDim < 0 || inBatch[inDim] == 1 {
			continue
		}
		idx += coord * inStrides[inDim]
	}
	return idx
}

// transposeSquare writes the transpose of the n-by-n flat matrix src into
// dst. The slices must not overlap.
func transposeSquare(dst, src []float64, n int) {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst[j*n+i] = src[i*n+j]
		}
	}
}
