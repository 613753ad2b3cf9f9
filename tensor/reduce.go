package tensor

import (
	"fmt"
	"math"
)

// Fold reduces the whole tensor to a scalar by applying fn to the
// flattened values.
func (t *Tensor) Fold(fn func([]float64) float64) float64 {
	return fn(t.Data())
}

// FoldDim applies fn independently to every 1-D slice along dim. The
// output shape drops dim, or keeps it with size 1 when keepDim is set.
// Negative dims count from the end; out-of-range dims yield ErrDim.
func (t *Tensor) FoldDim(fn func([]float64) float64, dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("fold dim", dim, keepDim, fn)
}

// foldDimIndexed is the shared per-dimension reduction loop: it gathers
// each 1-D slice along dim into a scratch buffer (row-major group order)
// and writes fn's result into the matching output position.
func (t *Tensor) foldDimIndexed(op string, dim int, keepDim bool, fn func([]float64) float64) (*Tensor, error) {
	rank := len(t.shape)
	d, err := normalizeDim(dim, rank)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var outShape Shape
	if keepDim {
		outShape = t.shape.Clone()
		outShape[d] = 1
	} else if rank == 1 {
		outShape = Shape{1}
	} else {
		outShape = make(Shape, 0, rank-1)
		for i, size := range t.shape {
			if i != d {
				outShape = append(outShape, size)
			}
		}
	}
	result := newDense(outShape)

	data := t.Data()
	out := result.Data()
	strides := t.layout.Strides()
	dimSize := t.shape[d]
	dimStride := strides[d]
	scratch := make([]float64, dimSize)

	for group := range out {
		// Decompose the group number into the non-reduced coordinates.
		base := 0
		remaining := group
		for i := rank - 1; i >= 0; i-- {
			if i == d {
				continue
			}
			coord := remaining % t.shape[i]
			remaining /= t.shape[i]
			base += coord * strides[i]
		}

		for k := 0; k < dimSize; k++ {
			scratch[k] = data[base+k*dimStride]
		}
		out[group] = fn(scratch)
	}
	return result, nil
}

// Sum returns the sum of all elements.
func (t *Tensor) Sum() float64 {
	return t.Fold(sumValues)
}

// SumDim sums along dim with keep-dim semantics.
func (t *Tensor) SumDim(dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("sum dim", dim, keepDim, sumValues)
}

// Min returns the smallest element.
func (t *Tensor) Min() float64 {
	return t.Fold(minValues)
}

// MinDim returns the per-slice minimum along dim.
func (t *Tensor) MinDim(dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("min dim", dim, keepDim, minValues)
}

// Max returns the largest element.
func (t *Tensor) Max() float64 {
	return t.Fold(maxValues)
}

// MaxDim returns the per-slice maximum along dim.
func (t *Tensor) MaxDim(dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("max dim", dim, keepDim, maxValues)
}

// Mean returns the arithmetic mean of all elements.
func (t *Tensor) Mean() float64 {
	return t.Fold(meanValues)
}

// MeanDim returns the per-slice mean along dim.
func (t *Tensor) MeanDim(dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("mean dim", dim, keepDim, meanValues)
}

// Variance returns the sample variance (N−1 denominator) of all elements.
// A single-element tensor yields NaN, per IEEE division semantics.
func (t *Tensor) Variance() float64 {
	return t.Fold(varianceValues)
}

// VarianceDim returns the per-slice sample variance along dim. Slices of
// size 1 yield NaN, not an error.
func (t *Tensor) VarianceDim(dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("variance dim", dim, keepDim, varianceValues)
}

// Std returns the sample standard deviation of all elements.
func (t *Tensor) Std() float64 {
	return t.Fold(stdValues)
}

// StdDim returns the per-slice sample standard deviation along dim.
func (t *Tensor) StdDim(dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("std dim", dim, keepDim, stdValues)
}

// ArgMax returns, per slice along dim, the index of the maximum element as
// a float64. Ties resolve to the first occurrence in iteration order.
func (t *Tensor) ArgMax(dim int, keepDim bool) (*Tensor, error) {
	return t.foldDimIndexed("argmax", dim, keepDim, func(slice []float64) float64 {
		maxIdx := 0
		maxVal := slice[0]
		for i, v := range slice[1:] {
			if v > maxVal {
				maxVal = v
				maxIdx = i + 1
			}
		}
		return float64(maxIdx)
	})
}

func sumValues(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

func minValues(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxValues(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func meanValues(values []float64) float64 {
	return sumValues(values) / float64(len(values))
}

func varianceValues(values []float64) float64 {
	mean := meanValues(values)
	var sq float64
	for _, v := range values {
		diff := v - mean
		sq += diff * diff
	}
	// N−1 denominator: a size-1 slice gives 0/0 = NaN.
	return sq / float64(len(values)-1)
}

func stdValues(values []float64) float64 {
	return math.Sqrt(varianceValues(values))
}
