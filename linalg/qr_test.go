package linalg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michael-bauer-horsch/kmath/linalg"
	"github.com/michael-bauer-horsch/kmath/tensor"
)

func TestQRRoundTrip(t *testing.T) {
	a := fromSlice(t, []float64{
		12, -51, 4,
		6, 167, -68,
		-4, 24, -41,
	}, tensor.Shape{3, 3})

	q, r, err := linalg.QR(a)
	require.NoError(t, err)
	requireClose(t, a, reconstruct(t, q, r), 1e-10)
}

func TestQROrthogonalityAndTriangularity(t *testing.T) {
	a, err := tensor.RandomNormal(tensor.Shape{2, 6, 6}, 23)
	require.NoError(t, err)

	q, r, err := linalg.QR(a)
	require.NoError(t, err)
	requireClose(t, a, reconstruct(t, q, r), 1e-9)

	// QᵗQ = I per batch matrix.
	qt, err := q.Transpose(-2, -1)
	require.NoError(t, err)
	prod := reconstruct(t, qt, q)
	seq, err := prod.Matrices()
	require.NoError(t, err)
	eye, err := tensor.Eye(6)
	require.NoError(t, err)
	for b := 0; b < seq.Len(); b++ {
		requireClose(t, eye, seq.At(b), 1e-10)
	}

	// R upper triangular.
	rSeq, err := r.Matrices()
	require.NoError(t, err)
	for b := 0; b < rSeq.Len(); b++ {
		m := rSeq.At(b).Data()
		for i := 0; i < 6; i++ {
			for j := 0; j < i; j++ {
				assert.InDelta(t, 0.0, m[i*6+j], 1e-12)
			}
		}
	}
}

func TestQRIdentity(t *testing.T) {
	eye, err := tensor.Eye(4)
	require.NoError(t, err)

	q, r, err := linalg.QR(eye)
	require.NoError(t, err)

	// Q and R are both orthogonal diagonal matrices here; the product
	// must restore the identity exactly up to rounding.
	requireClose(t, eye, reconstruct(t, q, r), 1e-14)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1.0, math.Abs(q.Data()[i*4+i]), 1e-14)
	}
}

func TestQRNonSquare(t *testing.T) {
	a, err := tensor.RandomNormal(tensor.Shape{3, 4}, 2)
	require.NoError(t, err)
	_, _, err = linalg.QR(a)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
