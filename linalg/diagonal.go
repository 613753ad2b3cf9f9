package linalg

import (
	"fmt"

	"github.com/michael-bauer-horsch/kmath/tensor"
)

// DiagonalEmbedding expands the last dimension of diag into a matrix
// diagonal. The output has one more dimension than the input: the two
// dimensions addressed by dim1 and dim2 (counted on the output rank,
// negatives allowed) both have size n+|offset| where n is the size of the
// embedded dimension. A positive offset shifts the diagonal above the main
// one, a negative offset below. All other entries are zero.
func DiagonalEmbedding(diag *tensor.Tensor, offset, dim1, dim2 int) (*tensor.Tensor, error) {
	inShape := diag.Shape()
	outRank := len(inShape) + 1

	d1, err := normalizeOutDim("diagonal embedding", dim1, outRank)
	if err != nil {
		return nil, err
	}
	d2, err := normalizeOutDim("diagonal embedding", dim2, outRank)
	if err != nil {
		return nil, err
	}
	if d1 == d2 {
		return nil, fmt.Errorf("diagonal embedding: dims %d and %d coincide: %w", dim1, dim2, tensor.ErrDim)
	}

	n := inShape[len(inShape)-1]
	side := n + abs(offset)

	// Batch dims of the input fill the output dims that are neither d1
	// nor d2, in order.
	outShape := make(tensor.Shape, outRank)
	outShape[d1] = side
	outShape[d2] = side
	batchDims := make([]int, 0, outRank-2)
	for i := 0; i < outRank; i++ {
		if i != d1 && i != d2 {
			outShape[i] = inShape[len(batchDims)]
			batchDims = append(batchDims, i)
		}
	}

	out, err := tensor.Zeros(outShape)
	if err != nil {
		return nil, fmt.Errorf("diagonal embedding: %w", err)
	}

	rowBase := max(-offset, 0)
	colBase := max(offset, 0)
	in := diag.Data()
	inLayout := diag.Layout()
	outIdx := make([]int, outRank)
	for flat := 0; flat < diag.NumElements(); flat++ {
		inIdx := inLayout.Index(flat)
		for b, dim := range batchDims {
			outIdx[dim] = inIdx[b]
		}
		k := inIdx[len(inIdx)-1]
		outIdx[d1] = rowBase + k
		outIdx[d2] = colBase + k
		off, err := out.Layout().Offset(outIdx)
		if err != nil {
			return nil, fmt.Errorf("diagonal embedding: %w", err)
		}
		out.Data()[off] = in[flat]
	}
	return out, nil
}

func normalizeOutDim(op string, dim, rank int) (int, error) {
	d := dim
	if d < 0 {
		d += rank
	}
	if d < 0 || d >= rank {
		return 0, fmt.Errorf("%s: dim %d out of range for rank %d: %w", op, dim, rank, tensor.ErrDim)
	}
	return d, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
