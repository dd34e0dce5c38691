package terrain

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightFuncAndFlat(t *testing.T) {
	f := HeightFunc(func(x, z float32) float32 { return x + 2*z })
	assert.Equal(t, float32(7), f.Sample(1, 3))
	assert.Equal(t, float32(-4), Flat(-4).Sample(100, -100))
}

func TestHeightmapInterpolates(t *testing.T) {
	hm, err := NewHeightmap([][]float32{
		{0, 10},
		{20, 30},
	}, 5)
	require.NoError(t, err)

	assert.Equal(t, float32(0), hm.Sample(0, 0))
	assert.Equal(t, float32(10), hm.Sample(0, 5))
	assert.Equal(t, float32(20), hm.Sample(5, 0))
	assert.Equal(t, float32(30), hm.Sample(5, 5))
	assert.InDelta(t, 15, hm.Sample(2.5, 2.5), 1e-5)
	assert.InDelta(t, 5, hm.Sample(0, 2.5), 1e-5)
}

func TestHeightmapClampsOutside(t *testing.T) {
	hm, err := NewHeightmap([][]float32{
		{0, 10, 10},
		{20, 30, 30},
		{20, 30, 40},
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, float32(0), hm.Sample(-50, -50))
	assert.Equal(t, float32(40), hm.Sample(50, 50))
	assert.Equal(t, hm.Sample(2, 1), hm.Sample(9, 1))
}

func TestNewHeightmapRejectsBadInput(t *testing.T) {
	_, err := NewHeightmap([][]float32{{1, 2}}, 1)
	assert.Error(t, err)

	_, err = NewHeightmap([][]float32{{1}, {2}}, 1)
	assert.Error(t, err)

	_, err = NewHeightmap([][]float32{{1, 2}, {3}}, 1)
	assert.Error(t, err)

	_, err = NewHeightmap([][]float32{{1, 2}, {3, 4}}, 0)
	assert.Error(t, err)
}

func TestNoiseFieldDeterministic(t *testing.T) {
	a := NewNoiseField(42, 5, 0.01, 40, 2, 0.5)
	b := NewNoiseField(42, 5, 0.01, 40, 2, 0.5)
	c := NewNoiseField(43, 5, 0.01, 40, 2, 0.5)

	differs := false
	for i := 0; i < 64; i++ {
		x := float32(i)*17.3 - 400
		z := float32(i)*-9.1 + 250
		require.Equal(t, a.Sample(x, z), b.Sample(x, z))
		if a.Sample(x, z) != c.Sample(x, z) {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should produce different terrain")
}

func TestNoiseFieldBounded(t *testing.T) {
	n := NewNoiseField(7, 4, 0.02, 10, 2, 0.5)
	for i := 0; i < 500; i++ {
		h := n.Sample(float32(i)*3.7, float32(i)*-5.3)
		require.False(t, math32.IsNaN(h))
		assert.LessOrEqual(t, math32.Abs(h), float32(20))
	}
}

func TestNoiseFieldZeroAtLatticePoints(t *testing.T) {
	n := NewNoiseField(1, 1, 1, 10, 2, 0.5)
	assert.Equal(t, float32(0), n.Sample(3, -4))
}
