package tensor

import (
	"fmt"
	"strings"
)

// buffer is the flat storage shared by a tensor and all of its views.
// The Go garbage collector owns the allocation: a view keeps the whole
// buffer reachable for as long as the view lives.
type buffer struct {
	data []float64
}

func newBuffer(size int) *buffer {
	return &buffer{data: make([]float64, size)}
}

// Tensor is a shape-immutable view over a shared flat float64 buffer.
// Multiple tensors may alias the same buffer (views); mutation through one
// alias is visible through all of them.
type Tensor struct {
	buf    *buffer
	offset int
	shape  Shape
	layout Layout
}

// FromSlice creates a tensor from a flat data slice. The data is copied
// into fresh storage. Returns ErrShape if the shape is empty, has a
// non-positive dimension, or its element count differs from len(data).
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("from slice: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("from slice: shape %v requires %d elements, got %d: %w",
			shape, shape.NumElements(), len(data), ErrShape)
	}

	t := newDense(shape)
	copy(t.Data(), data)
	return t, nil
}

// newDense allocates a zero-filled tensor for an already validated shape.
func newDense(shape Shape) *Tensor {
	return &Tensor{
		buf:    newBuffer(shape.NumElements()),
		offset: 0,
		shape:  shape.Clone(),
		layout: NewLayout(shape),
	}
}

// newView wraps an existing buffer window under a new shape without
// copying. The caller guarantees offset+shape.NumElements() fits the
// buffer.
func newView(buf *buffer, offset int, shape Shape) *Tensor {
	return &Tensor{
		buf:    buf,
		offset: offset,
		shape:  shape.Clone(),
		layout: NewLayout(shape),
	}
}

// Shape returns the tensor's shape. The returned slice must not be
// mutated.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Rank returns the number of dimensions.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.layout.Size()
}

// Layout returns the tensor's linear structure.
func (t *Tensor) Layout() Layout {
	return t.layout
}

// Data returns the tensor's window into the underlying buffer.
//
// WARNING: the slice directly aliases the storage; writes through it are
// visible to every view of the same buffer.
func (t *Tensor) Data() []float64 {
	return t.buf.data[t.offset : t.offset+t.layout.Size()]
}

// At returns the element at the given multi-index. Each component is
// bounds checked; a violation yields ErrIndex.
func (t *Tensor) At(index ...int) (float64, error) {
	offset, err := t.layout.Offset(index)
	if err != nil {
		return 0, fmt.Errorf("at: %w", err)
	}
	return t.buf.data[t.offset+offset], nil
}

// SetAt sets the element at the given multi-index. Each component is
// bounds checked; a violation yields ErrIndex.
func (t *Tensor) SetAt(value float64, index ...int) error {
	offset, err := t.layout.Offset(index)
	if err != nil {
		return fmt.Errorf("set at: %w", err)
	}
	t.buf.data[t.offset+offset] = value
	return nil
}

// Value extracts the scalar held by a tensor of shape exactly [1].
// Any other shape yields ErrScalarAccess.
func (t *Tensor) Value() (float64, error) {
	if len(t.shape) != 1 || t.shape[0] != 1 {
		return 0, fmt.Errorf("value: shape is %v, want [1]: %w", t.shape, ErrScalarAccess)
	}
	return t.buf.data[t.offset], nil
}

// Copy duplicates the tensor into fresh storage, breaking any aliasing
// with the original buffer.
func (t *Tensor) Copy() *Tensor {
	out := newDense(t.shape)
	copy(out.Data(), t.Data())
	return out
}

// Aliases reports whether two tensors share the same underlying buffer.
func (t *Tensor) Aliases(other *Tensor) bool {
	return t.buf == other.buf
}

// String returns a short human-readable description.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor%v", []int(t.shape))
	if t.layout.Size() <= 8 {
		fmt.Fprintf(&sb, "%v", t.Data())
	} else {
		fmt.Fprintf(&sb, "[%d elements]", t.layout.Size())
	}
	return sb.String()
}
