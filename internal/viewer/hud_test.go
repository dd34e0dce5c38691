package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func TestTitle(t *testing.T) {
	stats := terrain.UpdateStats{Center: terrain.GridCoord{X: 2, Y: -1}}
	stats.LODCounts[terrain.LODStandard] = 9
	stats.LODCounts[terrain.LODCoarse] = 16
	stats.LODCounts[terrain.LODVeryCoarse] = 56

	got := Title(59.6, math.Vec3{X: 150, Y: 40, Z: -70}, stats)
	assert.Equal(t, "Midgard Terrain | 60 fps | pos 150, 40, -70 | patch "+stats.Center.String()+" | lod 9/16/56", got)
}

func TestScaleSpeed(t *testing.T) {
	assert.InDelta(t, 120.0, ScaleSpeed(100, 1), 1e-4)
	assert.InDelta(t, 100.0, ScaleSpeed(120, -1), 1e-4)
	assert.Equal(t, float32(minMoveSpeed), ScaleSpeed(6, -5))
	assert.Equal(t, float32(maxMoveSpeed), ScaleSpeed(1900, 3))
	assert.Equal(t, float32(50), ScaleSpeed(50, 0))
}
