package tensor

import (
	"errors"
	"math"
	"testing"
)

func TestGlobalReductions(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3}, Shape{3})

	if got := x.Sum(); got != 6 {
		t.Errorf("Sum: expected 6, got %v", got)
	}
	if got := x.Min(); got != 1 {
		t.Errorf("Min: expected 1, got %v", got)
	}
	if got := x.Max(); got != 3 {
		t.Errorf("Max: expected 3, got %v", got)
	}
	if got := x.Mean(); got != 2 {
		t.Errorf("Mean: expected 2, got %v", got)
	}
	if got := x.Variance(); got != 1 {
		t.Errorf("Variance: expected 1 (sample), got %v", got)
	}
	if got := x.Std(); got != 1 {
		t.Errorf("Std: expected 1, got %v", got)
	}
}

func TestVarianceSingleElementIsNaN(t *testing.T) {
	x, _ := FromSlice([]float64{5}, Shape{1})
	if got := x.Variance(); !math.IsNaN(got) {
		t.Errorf("Variance of one element: expected NaN, got %v", got)
	}
	if got := x.Std(); !math.IsNaN(got) {
		t.Errorf("Std of one element: expected NaN, got %v", got)
	}
}

func TestSumDim2D(t *testing.T) {
	// Row 0: [1, 2, 3]
	// Row 1: [4, 5, 6]
	x, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	result, err := x.SumDim(-1, true)
	if err != nil {
		t.Fatalf("SumDim(-1, true): %v", err)
	}
	if !result.Shape().Equal(Shape{2, 1}) {
		t.Errorf("Expected shape [2 1], got %v", result.Shape())
	}
	if result.Data()[0] != 6 || result.Data()[1] != 15 {
		t.Errorf("Expected [6 15], got %v", result.Data())
	}

	result, err = x.SumDim(0, false)
	if err != nil {
		t.Fatalf("SumDim(0, false): %v", err)
	}
	if !result.Shape().Equal(Shape{3}) {
		t.Errorf("Expected shape [3], got %v", result.Shape())
	}
	want := []float64{5, 7, 9}
	for i, v := range result.Data() {
		if v != want[i] {
			t.Errorf("Column %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestSumDim3DMiddle(t *testing.T) {
	x, _ := FromSlice([]float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,

		13, 14, 15, 16,
		17, 18, 19, 20,
		21, 22, 23, 24,
	}, Shape{2, 3, 4})

	result, err := x.SumDim(1, false)
	if err != nil {
		t.Fatalf("SumDim(1, false): %v", err)
	}
	if !result.Shape().Equal(Shape{2, 4}) {
		t.Fatalf("Expected shape [2 4], got %v", result.Shape())
	}
	want := []float64{15, 18, 21, 24, 51, 54, 57, 60}
	for i, v := range result.Data() {
		if v != want[i] {
			t.Errorf("Element %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestReduceRank1DropsToScalarShape(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3}, Shape{3})
	result, err := x.SumDim(0, false)
	if err != nil {
		t.Fatalf("SumDim: %v", err)
	}
	if !result.Shape().Equal(Shape{1}) {
		t.Errorf("Expected shape [1], got %v", result.Shape())
	}
	v, err := result.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 6 {
		t.Errorf("Expected 6, got %v", v)
	}
}

func TestMinDimMaxDim(t *testing.T) {
	// Row 0: [3, 1, 4]
	// Row 1: [1, 5, 9]
	x, _ := FromSlice([]float64{3, 1, 4, 1, 5, 9}, Shape{2, 3})

	mn, err := x.MinDim(1, false)
	if err != nil {
		t.Fatalf("MinDim: %v", err)
	}
	if !mn.Shape().Equal(Shape{2}) {
		t.Fatalf("Expected shape [2], got %v", mn.Shape())
	}
	if mn.Data()[0] != 1 || mn.Data()[1] != 1 {
		t.Errorf("Expected row minima [1 1], got %v", mn.Data())
	}

	mx, err := x.MaxDim(0, true)
	if err != nil {
		t.Fatalf("MaxDim: %v", err)
	}
	if !mx.Shape().Equal(Shape{1, 3}) {
		t.Fatalf("Expected shape [1 3], got %v", mx.Shape())
	}
	want := []float64{3, 5, 9}
	for i, v := range mx.Data() {
		if v != want[i] {
			t.Errorf("Column %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestMeanDimAndStdDim(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3, 5, 5, 5}, Shape{2, 3})

	mean, err := x.MeanDim(1, false)
	if err != nil {
		t.Fatalf("MeanDim: %v", err)
	}
	if mean.Data()[0] != 2 || mean.Data()[1] != 5 {
		t.Errorf("Expected means [2 5], got %v", mean.Data())
	}

	std, err := x.StdDim(1, false)
	if err != nil {
		t.Fatalf("StdDim: %v", err)
	}
	if std.Data()[0] != 1 || std.Data()[1] != 0 {
		t.Errorf("Expected stds [1 0], got %v", std.Data())
	}
}

func TestArgMax(t *testing.T) {
	x, _ := FromSlice([]float64{3, 1, 4, 1, 5, 9, 2, 6}, Shape{2, 4})

	result, err := x.ArgMax(1, false)
	if err != nil {
		t.Fatalf("ArgMax: %v", err)
	}
	if !result.Shape().Equal(Shape{2}) {
		t.Fatalf("Expected shape [2], got %v", result.Shape())
	}
	// Indices come back float-valued.
	if result.Data()[0] != 2 || result.Data()[1] != 1 {
		t.Errorf("Expected [2 1], got %v", result.Data())
	}
}

func TestArgMaxTiesFirstWins(t *testing.T) {
	x, _ := FromSlice([]float64{1, 7, 7, 1}, Shape{4})
	result, err := x.ArgMax(0, false)
	if err != nil {
		t.Fatalf("ArgMax: %v", err)
	}
	if result.Data()[0] != 1 {
		t.Errorf("Expected first maximum at index 1, got %v", result.Data()[0])
	}
}

func TestReduceDimOutOfRange(t *testing.T) {
	x, _ := FromSlice([]float64{1, 2, 3}, Shape{3})
	if _, err := x.SumDim(1, false); !errors.Is(err, ErrDim) {
		t.Errorf("Expected ErrDim, got %v", err)
	}
}

func TestFold(t *testing.T) {
	x, _ := FromSlice([]float64{2, 3, 4}, Shape{3})
	prod := x.Fold(func(values []float64) float64 {
		p := 1.0
		for _, v := range values {
			p *= v
		}
		return p
	})
	if prod != 24 {
		t.Errorf("Expected 24, got %v", prod)
	}
}
