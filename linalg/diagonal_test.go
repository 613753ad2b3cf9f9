package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michael-bauer-horsch/kmath/linalg"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

func TestDiagonalEmbeddingMain(t *testing.T) {
	d := fromSlice(t, []float64{1, 2, 3}, tensor.Shape{3})

	m, err := linalg.DiagonalEmbedding(d, 0, -2, -1)
	require.NoError(t, err)
	want := fromSlice(t, []float64{
		1, 0, 0,
		0, 2, 0,
		0, 0, 3,
	}, tensor.Shape{3, 3})
	requireClose(t, want, m, 0)
}

func TestDiagonalEmbeddingOffsets(t *testing.T) {
	d := fromSlice(t, []float64{1, 2}, tensor.Shape{2})

	above, err := linalg.DiagonalEmbedding(d, 1, -2, -1)
	require.NoError(t, err)
	want := fromSlice(t, []float64{
		0, 1, 0,
		0, 0, 2,
		0, 0, 0,
	}, tensor.Shape{3, 3})
	requireClose(t, want, above, 0)

	below, err := linalg.DiagonalEmbedding(d, -1, -2, -1)
	require.NoError(t, err)
	want = fromSlice(t, []float64{
		0, 0, 0,
		1, 0, 0,
		0, 2, 0,
	}, tensor.Shape{3, 3})
	requireClose(t, want, below, 0)
}

func TestDiagonalEmbeddingBatched(t *testing.T) {
	d := fromSlice(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	m, err := linalg.DiagonalEmbedding(d, 0, -2, -1)
	require.NoError(t, err)
	want := fromSlice(t, []float64{
		1, 0, 0, 2,
		3, 0, 0, 4,
	}, tensor.Shape{2, 2, 2})
	requireClose(t, want, m, 0)
}

func TestDiagonalEmbeddingCustomDims(t *testing.T) {
	d := fromSlice(t, []float64{1, 2}, tensor.Shape{2})

	// Embedding into dims (0, 1) of the output equals the default here;
	// flipping to (1, 0) transposes it.
	m, err := linalg.DiagonalEmbedding(d, 1, 1, 0)
	require.NoError(t, err)
	want := fromSlice(t, []float64{
		0, 0, 0,
		1, 0, 0,
		0, 2, 0,
	}, tensor.Shape{3, 3})
	requireClose(t, want, m, 0)
}

func TestDiagonalEmbeddingBadDims(t *testing.T) {
	d := fromSlice(t, []float64{1, 2}, tensor.Shape{2})

	_, err := linalg.DiagonalEmbedding(d, 0, 1, 1)
	require.ErrorIs(t, err, tensor.ErrDim)

	_, err = linalg.DiagonalEmbedding(d, 0, 0, 5)
	require.ErrorIs(t, err, tensor.ErrDim)
}
