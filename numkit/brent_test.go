package numkit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrentFindsPolynomialRoot(t *testing.T) {
	f := func(x float64) float64 { return x*x - 2 }
	root, err := Brent(f, 0, 2, 1e-12)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, root, 1e-9)
}

func TestBrentFindsTrigRoot(t *testing.T) {
	f := math.Sin
	root, err := Brent(f, 3, 3.3, 1e-10)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, root, 1e-8)
}

func TestBrentRejectsBadBracket(t *testing.T) {
	f := func(x float64) float64 { return x*x + 1 }
	_, err := Brent(f, -1, 1, 1e-6)
	assert.ErrorIs(t, err, ErrBadBracket)
}

func TestFindRootsLocatesMultipleCrossings(t *testing.T) {
	// sin(x) has roots at pi, 2*pi, 3*pi within [0.1, 3*pi+0.1].
	f := math.Sin
	roots, err := FindRoots(f, 0.1, 3*math.Pi+0.1, 0.5, 1e-9)
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.InDelta(t, math.Pi, roots[0], 1e-6)
	assert.InDelta(t, 2*math.Pi, roots[1], 1e-6)
	assert.InDelta(t, 3*math.Pi, roots[2], 1e-6)
}

func TestFindRootsRejectsBadRange(t *testing.T) {
	_, err := FindRoots(math.Sin, 5, 1, 0.1, 1e-6)
	assert.Error(t, err)
}
