package linalg_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michael-bauer-horsch/kmath/linalg"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

func TestSymEigKnownSpectrum(t *testing.T) {
	a := fromSlice(t, []float64{
		2, 1,
		1, 2,
	}, tensor.Shape{2, 2})

	vals, vecs, err := linalg.SymEig(a)
	require.NoError(t, err)
	require.True(t, vals.Shape().Equal(tensor.Shape{2}))
	require.True(t, vecs.Shape().Equal(tensor.Shape{2, 2}))

	got := append([]float64(nil), vals.Data()...)
	sort.Float64s(got)
	assert.InDelta(t, 1.0, got[0], 1e-9)
	assert.InDelta(t, 3.0, got[1], 1e-9)
}

func TestSymEigNegativeEigenvalue(t *testing.T) {
	// Indefinite but symmetric: spectrum {3, -1}.
	a := fromSlice(t, []float64{
		1, 2,
		2, 1,
	}, tensor.Shape{2, 2})

	vals, _, err := linalg.SymEig(a)
	require.NoError(t, err)

	got := append([]float64(nil), vals.Data()...)
	sort.Float64s(got)
	assert.InDelta(t, -1.0, got[0], 1e-9)
	assert.InDelta(t, 3.0, got[1], 1e-9)
}

func TestSymEigReconstruction(t *testing.T) {
	a := spdFromSeed(t, 2, 4, 53)

	vals, vecs, err := linalg.SymEig(a)
	require.NoError(t, err)

	// A·V = V·diag(vals) per batch matrix.
	av := reconstruct(t, a, vecs)
	dv, err := linalg.DiagonalEmbedding(vals, 0, -2, -1)
	require.NoError(t, err)
	vd := reconstruct(t, vecs, dv)
	requireClose(t, av, vd, 1e-7)
}

func TestSymEigRejectsAsymmetric(t *testing.T) {
	a := fromSlice(t, []float64{
		1, 2,
		0, 1,
	}, tensor.Shape{2, 2})

	_, _, err := linalg.SymEig(a)
	require.ErrorIs(t, err, linalg.ErrNotSymmetric)
}
