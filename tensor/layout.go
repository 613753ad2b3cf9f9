package tensor

import "fmt"

// Layout is the linear structure of a shape: a pure mapping between
// multi-indices and row-major flat offsets. It holds no mutable state.
type Layout struct {
	shape   Shape
	strides []int
	size    int
}

// NewLayout derives the row-major layout of shape. The shape is assumed
// valid; callers go through Shape.Validate first.
func NewLayout(shape Shape) Layout {
	return Layout{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		size:    shape.NumElements(),
	}
}

// Shape returns the layout's shape.
func (l Layout) Shape() Shape {
	return l.shape
}

// Strides returns the layout's row-major strides.
func (l Layout) Strides() []int {
	return l.strides
}

// Size returns the number of addressable elements.
func (l Layout) Size() int {
	return l.size
}

// Offset maps a multi-index to its flat offset. Every component is bounds
// checked against the shape; a violation yields ErrIndex.
func (l Layout) Offset(index []int) (int, error) {
	if len(index) != len(l.shape) {
		return 0, fmt.Errorf("expected %d index components, got %d: %w", len(l.shape), len(index), ErrIndex)
	}
	offset := 0
	for i, idx := range index {
		if idx < 0 || idx >= l.shape[i] {
			return 0, fmt.Errorf("index %d out of bounds for dimension %d (size %d): %w",
				idx, i, l.shape[i], ErrIndex)
		}
		offset += idx * l.strides[i]
	}
	return offset, nil
}

// Index maps a flat offset back to its multi-index. Offset and Index are
// mutual inverses for all offsets in [0, Size).
func (l Layout) Index(offset int) []int {
	index := make([]int, len(l.shape))
	for i, stride := range l.strides {
		index[i] = offset / stride
		offset %= stride
	}
	return index
}

// Positions returns a lazy, restartable sequence over all multi-indices of
// the layout in row-major order (last dimension fastest). This ordering is
// what makes flat-offset arithmetic line up with index arithmetic across
// the package.
func (l Layout) Positions() *PositionSeq {
	return &PositionSeq{layout: l}
}

// PositionSeq iterates the multi-indices of a Layout in row-major order.
type PositionSeq struct {
	layout Layout
	next   int
}

// Next returns the next multi-index, or false when the sequence is
// exhausted. The returned slice is freshly allocated and safe to retain.
func (s *PositionSeq) Next() ([]int, bool) {
	if s.next >= s.layout.size {
		return nil, false
	}
	index := s.layout.Index(s.next)
	s.next++
	return index, true
}

// Reset restarts the sequence from the first index.
func (s *PositionSeq) Reset() {
	s.next = 0
}
