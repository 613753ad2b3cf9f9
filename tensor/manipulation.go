package tensor

import "fmt"

// Transpose permutes two axes, producing a new tensor with physically
// reordered data. Negative axes count from the end. Axes outside
// [-rank, rank) yield ErrDim.
//
// The data is rewritten into a fresh buffer rather than kept behind
// swapped strides, so every subsequent flat-buffer operation stays
// row-major correct.
func (t *Tensor) Transpose(i, j int) (*Tensor, error) {
	rank := len(t.shape)
	i, err := normalizeDim(i, rank)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}
	j, err = normalizeDim(j, rank)
	if err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	outShape := t.shape.Clone()
	outShape[i], outShape[j] = outShape[j], outShape[i]
	result := newDense(outShape)

	src := t.Data()
	dst := result.Data()
	for offset := range src {
		index := t.layout.Index(offset)
		index[i], index[j] = index[j], index[i]
		outOffset, _ := result.layout.Offset(index)
		dst[outOffset] = src[offset]
	}
	return result, nil
}

// View reinterprets the same buffer under a new shape without copying.
// The new shape must describe exactly NumElements() elements, ErrShape
// otherwise. The result aliases the receiver's buffer.
func (t *Tensor) View(shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("view: %w", err)
	}
	if shape.NumElements() != t.layout.Size() {
		return nil, fmt.Errorf("view: shape %v has %d elements, tensor has %d: %w",
			shape, shape.NumElements(), t.layout.Size(), ErrShape)
	}
	return newView(t.buf, t.offset, shape), nil
}

// ViewAs reinterprets the buffer under other's shape.
func (t *Tensor) ViewAs(other *Tensor) (*Tensor, error) {
	return t.View(other.shape)
}

// Stack joins tensors of equal shape along a new leading dimension.
func Stack(tensors []*Tensor) (*Tensor, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("stack: no tensors given: %w", ErrShape)
	}
	shape := tensors[0].shape
	for k, t := range tensors[1:] {
		if !t.shape.Equal(shape) {
			return nil, fmt.Errorf("stack: tensor %d has shape %v, want %v: %w",
				k+1, t.shape, shape, ErrShapeMismatch)
		}
	}

	outShape := append(Shape{len(tensors)}, shape...)
	result := newDense(outShape)
	out := result.Data()
	step := shape.NumElements()
	for k, t := range tensors {
		copy(out[k*step:(k+1)*step], t.Data())
	}
	return result, nil
}

// RowsByIndices selects slices along the leading dimension, in the given
// order, into a fresh tensor. Indices repeat freely; an index outside
// [0, shape[0]) yields ErrIndex.
func (t *Tensor) RowsByIndices(indices ...int) (*Tensor, error) {
	rows := t.shape[0]
	step := t.layout.Size() / rows

	outShape := t.shape.Clone()
	outShape[0] = len(indices)
	if len(indices) == 0 {
		return nil, fmt.Errorf("rows by indices: no indices given: %w", ErrIndex)
	}

	result := newDense(outShape)
	src := t.Data()
	out := result.Data()
	for k, row := range indices {
		if row < 0 || row >= rows {
			return nil, fmt.Errorf("rows by indices: row %d out of bounds for leading dimension (size %d): %w",
				row, rows, ErrIndex)
		}
		copy(out[k*step:(k+1)*step], src[row*step:(row+1)*step])
	}
	return result, nil
}

// normalizeDim resolves a possibly negative dimension against rank and
// bounds checks it.
func normalizeDim(dim, rank int) (int, error) {
	d := dim
	if d < 0 {
		d += rank
	}
	if d < 0 || d >= rank {
		return 0, fmt.Errorf("dimension %d out of range for rank %d: %w", dim, rank, ErrDim)
	}
	return d, nil
}
