package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func TestBoundsOfGrid(t *testing.T) {
	field := terrain.HeightFunc(func(x, z float32) float32 { return x * 0.1 })
	grid, err := terrain.NewGrid(field, 10, 3, math.Vec3{})
	require.NoError(t, err)
	defer grid.Close()

	b, ok := BoundsOf(grid.Geometries())
	require.True(t, ok)
	assert.Equal(t, [3]float32{-10, -1, -10}, b.Min)
	assert.InDelta(t, 20, b.Max[0], 1e-5)
	assert.InDelta(t, 2, b.Max[1], 1e-5)
	assert.InDelta(t, 20, b.Max[2], 1e-5)
}

func TestBoundsOfEmpty(t *testing.T) {
	_, ok := BoundsOf(func(func(terrain.Geometry) bool) {})
	assert.False(t, ok)
}

func TestDirectionalLightMatrixContainsBounds(t *testing.T) {
	b := terrain.Bounds{Min: [3]float32{-50, -5, -50}, Max: [3]float32{50, 30, 50}}
	m := DirectionalLightMatrix(math.Vec3{X: 0.4, Y: 0.8, Z: 0.2}, b)

	for _, x := range []float32{b.Min[0], b.Max[0]} {
		for _, y := range []float32{b.Min[1], b.Max[1]} {
			for _, z := range []float32{b.Min[2], b.Max[2]} {
				p := m.TransformVec3(math.Vec3{X: x, Y: y, Z: z})
				assert.True(t, p.X >= -1 && p.X <= 1, "x %v", p)
				assert.True(t, p.Y >= -1 && p.Y <= 1, "y %v", p)
				assert.True(t, p.Z >= -1 && p.Z <= 1, "z %v", p)
			}
		}
	}
}

func TestDirectionalLightMatrixOverhead(t *testing.T) {
	b := terrain.Bounds{Min: [3]float32{0, 0, 0}, Max: [3]float32{10, 1, 10}}
	m := DirectionalLightMatrix(math.Vec3{Y: 1}, b)

	p := m.TransformVec3(math.Vec3{X: 5, Y: 0.5, Z: 5})
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 0, p.Y, 1e-4)
}
