package tensor

import "fmt"

// MatrixSeq is a lazy, restartable sequence of 2-D views over the trailing
// two dimensions of a tensor, iterating all leading batch dimensions in
// row-major order. Every yielded matrix aliases the origin buffer.
type MatrixSeq struct {
	t          *Tensor
	rows, cols int
	count      int
	next       int
}

// Matrices sequences the tensor as a batch of matrices. The tensor must
// have rank >= 2, ErrDim otherwise.
func (t *Tensor) Matrices() (*MatrixSeq, error) {
	rank := len(t.shape)
	if rank < 2 {
		return nil, fmt.Errorf("matrices: rank %d, need at least 2: %w", rank, ErrDim)
	}
	rows := t.shape[rank-2]
	cols := t.shape[rank-1]
	return &MatrixSeq{
		t:     t,
		rows:  rows,
		cols:  cols,
		count: t.layout.Size() / (rows * cols),
	}, nil
}

// Len returns the number of matrices in the sequence.
func (s *MatrixSeq) Len() int {
	return s.count
}

// Rows returns the row count of each matrix.
func (s *MatrixSeq) Rows() int {
	return s.rows
}

// Cols returns the column count of each matrix.
func (s *MatrixSeq) Cols() int {
	return s.cols
}

// BatchShape returns the leading batch dimensions of the origin tensor.
func (s *MatrixSeq) BatchShape() Shape {
	return s.t.shape[:len(s.t.shape)-2].Clone()
}

// At returns the i-th matrix of the sequence as a view. Batch slices are
// disjoint, so concurrent writers on distinct slices need no locking.
func (s *MatrixSeq) At(i int) *Tensor {
	step := s.rows * s.cols
	return newView(s.t.buf, s.t.offset+i*step, Shape{s.rows, s.cols})
}

// Next returns the next matrix view, or false when the sequence is
// exhausted.
func (s *MatrixSeq) Next() (*Tensor, bool) {
	if s.next >= s.count {
		return nil, false
	}
	m := s.At(s.next)
	s.next++
	return m, true
}

// Reset restarts the sequence from the first matrix.
func (s *MatrixSeq) Reset() {
	s.next = 0
}

// VectorSeq is a lazy, restartable sequence of 1-D views over the trailing
// dimension of a tensor, iterating the leading dimensions in row-major
// order.
type VectorSeq struct {
	t     *Tensor
	size  int
	count int
	next  int
}

// Vectors sequences the tensor as a batch of vectors over its trailing
// dimension.
func (t *Tensor) Vectors() *VectorSeq {
	size := t.shape[len(t.shape)-1]
	return &VectorSeq{
		t:     t,
		size:  size,
		count: t.layout.Size() / size,
	}
}

// Len returns the number of vectors in the sequence.
func (s *VectorSeq) Len() int {
	return s.count
}

// At returns the i-th vector of the sequence as a view.
func (s *VectorSeq) At(i int) *Tensor {
	return newView(s.t.buf, s.t.offset+i*s.size, Shape{s.size})
}

// Next returns the next vector view, or false when the sequence is
// exhausted.
func (s *VectorSeq) Next() (*Tensor, bool) {
	if s.next >= s.count {
		return nil, false
	}
	v := s.At(s.next)
	s.next++
	return v, true
}

// Reset restarts the sequence from the first vector.
func (s *VectorSeq) Reset() {
	s.next = 0
}
