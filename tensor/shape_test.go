package tensor

import (
	"errors"
	"testing"
)

func TestShapeNumElements(t *testing.T) {
	if got := (Shape{2, 3, 4}).NumElements(); got != 24 {
		t.Errorf("Expected 24 elements, got %d", got)
	}
	if got := (Shape{1}).NumElements(); got != 1 {
		t.Errorf("Expected 1 element, got %d", got)
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("Expected valid shape, got %v", err)
	}
	if err := (Shape{}).Validate(); !errors.Is(err, ErrShape) {
		t.Errorf("Expected ErrShape for empty shape, got %v", err)
	}
	if err := (Shape{2, 0}).Validate(); !errors.Is(err, ErrShape) {
		t.Errorf("Expected ErrShape for zero dimension, got %v", err)
	}
	if err := (Shape{-1, 3}).Validate(); !errors.Is(err, ErrShape) {
		t.Errorf("Expected ErrShape for negative dimension, got %v", err)
	}
}

func TestShapeCloneIndependent(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 2 {
		t.Errorf("Clone mutated the original: %v", s)
	}
}

func TestComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Errorf("Stride %d: expected %d, got %d", i, want[i], strides[i])
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		broadcast  bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{Shape{2, 3}, Shape{3}, Shape{2, 3}, true},
		{Shape{2, 1}, Shape{1, 3}, Shape{2, 3}, true},
		{Shape{1}, Shape{4, 5}, Shape{4, 5}, true},
		{Shape{5, 1, 4}, Shape{3, 1}, Shape{5, 3, 4}, true},
	}
	for _, tt := range tests {
		got, broadcast, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v): expected %v, got %v", tt.a, tt.b, tt.want, got)
		}
		if broadcast != tt.broadcast {
			t.Errorf("BroadcastShapes(%v, %v): broadcast flag %v, want %v", tt.a, tt.b, broadcast, tt.broadcast)
		}
	}
}

func TestBroadcastShapesIncompatible(t *testing.T) {
	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{4, 3}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("Expected ErrShapeMismatch, got %v", err)
	}
}

func TestBroadcastStrides(t *testing.T) {
	// [3] stretched into [2, 3]: leading dim repeats, so stride 0.
	strides := broadcastStrides(Shape{3}, Shape{2, 3})
	if strides[0] != 0 || strides[1] != 1 {
		t.Errorf("Expected [0 1], got %v", strides)
	}

	// [2, 1] stretched into [2, 3]: size-1 dim gets stride 0.
	strides = broadcastStrides(Shape{2, 1}, Shape{2, 3})
	if strides[0] != 1 || strides[1] != 0 {
		t.Errorf("Expected [1 0], got %v", strides)
	}
}
