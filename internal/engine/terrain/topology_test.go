package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndicesCounts(t *testing.T) {
	tests := []struct {
		resolution uint32
		side       uint32
		want       int
	}{
		{1, VerticesPerSide, 6 * 32 * 32},
		{4, VerticesPerSide, 6 * 8 * 8},
		{8, VerticesPerSide, 6 * 4 * 4},
		{1, 2, 6},
		{2, 5, 6 * 2 * 2},
	}
	for _, tt := range tests {
		indices, err := BuildIndices(tt.resolution, tt.side)
		require.NoError(t, err)
		assert.Len(t, indices, tt.want, "R=%d side=%d", tt.resolution, tt.side)
	}
}

func TestBuildIndicesFullResolutionMatchesFormula(t *testing.T) {
	for _, side := range []uint32{2, 3, 9, VerticesPerSide} {
		indices, err := BuildIndices(1, side)
		require.NoError(t, err)
		assert.Len(t, indices, int(6*(side-1)*(side-1)))
	}
}

func TestBuildIndicesFirstCell(t *testing.T) {
	indices, err := BuildIndices(1, VerticesPerSide)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 33, 33, 1, 34}, indices[:6])

	coarse, err := BuildIndices(4, VerticesPerSide)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 4, 132, 132, 4, 136}, coarse[:6])
}

func TestBuildIndicesDeterministic(t *testing.T) {
	a, err := BuildIndices(8, VerticesPerSide)
	require.NoError(t, err)
	b, err := BuildIndices(8, VerticesPerSide)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildIndicesReferenceDecimatedSamples(t *testing.T) {
	for _, level := range LODLevels {
		r := level.Resolution()
		indices, err := BuildIndices(r, VerticesPerSide)
		require.NoError(t, err)

		for _, idx := range indices {
			require.Less(t, idx, uint32(verticesPerPatch))
			row, col := idx/VerticesPerSide, idx%VerticesPerSide
			assert.Zero(t, row%r, "%s index %d off the decimated grid", level, idx)
			assert.Zero(t, col%r, "%s index %d off the decimated grid", level, idx)
		}
	}
}

func TestBuildIndicesRejectsBadResolution(t *testing.T) {
	for _, tt := range []struct{ resolution, side uint32 }{
		{0, VerticesPerSide},
		{3, VerticesPerSide},
		{5, VerticesPerSide},
		{1, 1},
		{1, 0},
	} {
		_, err := BuildIndices(tt.resolution, tt.side)
		assert.ErrorIs(t, err, ErrInvalidResolution, "R=%d side=%d", tt.resolution, tt.side)
	}
}

func TestTopologyCache(t *testing.T) {
	cache, err := NewTopologyCache(VerticesPerSide)
	require.NoError(t, err)

	for _, level := range LODLevels {
		topo := cache.Get(level)
		require.NotNil(t, topo)
		assert.Equal(t, level, topo.Level())
		assert.Equal(t, 1, topo.Refs(), "cache holds one reference")
		assert.Same(t, topo, cache.Get(level))
	}
	assert.Same(t, cache.Get(LODStandard), cache.Get(LODLevel(9)), "invalid levels map to standard")
	assert.Equal(t, uint32(VerticesPerSide), cache.SideLength())

	cache.Close()
}

func TestTopologyCacheRejectsIndivisibleSide(t *testing.T) {
	_, err := NewTopologyCache(30)
	assert.ErrorIs(t, err, ErrInvalidResolution)
}

func TestTopologyReleasedWithLastReference(t *testing.T) {
	cache, err := NewTopologyCache(VerticesPerSide)
	require.NoError(t, err)

	coarse := cache.Get(LODCoarse)
	p := NewPatch(Flat(0), GridCoord{}, 10, coarse)
	assert.Equal(t, 2, coarse.Refs())

	cache.Close()
	assert.Equal(t, 1, coarse.Refs())
	assert.False(t, coarse.Released())
	assert.NotEmpty(t, p.Indices(), "patch keeps the buffer alive")

	p.release()
	assert.True(t, coarse.Released())
	assert.Nil(t, coarse.Indices())
}

func TestTopologyReleaseUnderflowPanics(t *testing.T) {
	topo := &Topology{level: LODCoarse, indices: []uint32{0, 1, 2}}
	assert.Panics(t, topo.release)
}
