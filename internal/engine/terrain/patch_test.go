package terrain

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func newTestCache(t *testing.T) *TopologyCache {
	t.Helper()
	cache, err := NewTopologyCache(VerticesPerSide)
	require.NoError(t, err)
	return cache
}

func TestPatchSamplesTileExtent(t *testing.T) {
	cache := newTestCache(t)
	p := NewPatch(Flat(5), GridCoord{2, -1}, 10, cache.Get(LODStandard))

	verts := p.Vertices()
	require.Len(t, verts, VerticesPerSide*VerticesPerSide)

	assert.Equal(t, [3]float32{20, 5, -10}, verts[0].Position)
	assert.Equal(t, [3]float32{30, 5, 0}, verts[len(verts)-1].Position)

	h := float32(10) / (VerticesPerSide - 1)
	assert.Equal(t, [3]float32{20 + h, 5, -10}, verts[VerticesPerSide].Position, "r steps along x")
	assert.Equal(t, [3]float32{20, 5, -10 + h}, verts[1].Position, "c steps along z")

	for _, v := range verts {
		assert.Equal(t, [3]float32{0, 1, 0}, v.Normal)
	}

	b := p.Bounds()
	assert.Equal(t, [3]float32{20, 5, -10}, b.Min)
	assert.Equal(t, [3]float32{30, 5, 0}, b.Max)
}

func TestPatchAccessors(t *testing.T) {
	cache := newTestCache(t)
	p := NewPatch(Flat(0), GridCoord{2, -1}, 10, cache.Get(LODStandard))

	assert.Equal(t, GridCoord{2, -1}, p.GridIndex())
	assert.Equal(t, math.Vec3{X: 25, Y: 0, Z: -5}, p.WorldCenter())
	assert.Equal(t, float32(10), p.Size())
	assert.Equal(t, LODStandard, p.LOD())
	assert.Same(t, cache.Get(LODStandard), p.Topology())
	assert.Len(t, p.Indices(), 6*32*32)
}

func TestPatchNormalsFollowSlope(t *testing.T) {
	cache := newTestCache(t)
	slope := HeightFunc(func(x, z float32) float32 { return 0.5*x - 0.25*z })
	p := NewPatch(slope, GridCoord{-3, 4}, 16, cache.Get(LODStandard))

	want := math.Vec3{X: -0.5, Y: 1, Z: 0.25}.Normalize()
	for _, v := range p.Vertices() {
		assert.InDelta(t, want.X, v.Normal[0], 1e-4)
		assert.InDelta(t, want.Y, v.Normal[1], 1e-4)
		assert.InDelta(t, want.Z, v.Normal[2], 1e-4)
	}
}

func TestPatchNormalsMatchAcrossSeam(t *testing.T) {
	cache := newTestCache(t)
	field := NewNoiseField(3, 4, 0.05, 8, 2, 0.5)

	left := NewPatch(field, GridCoord{0, 0}, 10, cache.Get(LODStandard))
	right := NewPatch(field, GridCoord{1, 0}, 10, cache.Get(LODStandard))

	for c := 0; c < VerticesPerSide; c++ {
		a := left.Vertices()[(VerticesPerSide-1)*VerticesPerSide+c]
		b := right.Vertices()[c]
		require.Equal(t, a.Position, b.Position)
		for k := 0; k < 3; k++ {
			assert.InDelta(t, a.Normal[k], b.Normal[k], 1e-5, "column %d", c)
		}
	}
}

func TestPatchSetTopologyMovesReference(t *testing.T) {
	cache := newTestCache(t)
	p := NewPatch(Flat(0), GridCoord{}, 10, cache.Get(LODStandard))
	before := &p.Vertices()[0]

	assert.True(t, p.setTopology(cache.Get(LODVeryCoarse)))
	assert.False(t, p.setTopology(cache.Get(LODVeryCoarse)))

	assert.Equal(t, LODVeryCoarse, p.LOD())
	assert.Equal(t, 1, cache.Get(LODStandard).Refs())
	assert.Equal(t, 2, cache.Get(LODVeryCoarse).Refs())
	assert.Same(t, before, &p.Vertices()[0], "geometry is not resampled")
}

func TestPatchNonFiniteHeightsPropagate(t *testing.T) {
	cache := newTestCache(t)
	field := HeightFunc(func(x, z float32) float32 { return math32.NaN() })

	var p *Patch
	assert.NotPanics(t, func() {
		p = NewPatch(field, GridCoord{}, 10, cache.Get(LODStandard))
	})
	assert.True(t, math32.IsNaN(p.Vertices()[0].Position[1]))
}
