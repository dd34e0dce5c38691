package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func TestScreenToRayThroughCenter(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 100, Z: 0}
	view := math.LookAt(eye, math.Vec3{X: 0, Y: 0, Z: -1}, math.Vec3{X: 0, Y: 1, Z: 0})
	proj := math.Perspective(1.0, 1.0, 1, 1000)

	r, ok := ScreenToRay(400, 400, 800, 800, proj.Mul(view))
	require.True(t, ok)

	// Looking almost straight down towards (0, 0, -1)
	want := math.Vec3{X: 0, Y: -100, Z: -1}.Normalize()
	assert.InDelta(t, want.X, r.Direction.X, 1e-3)
	assert.InDelta(t, want.Y, r.Direction.Y, 1e-3)
	assert.InDelta(t, want.Z, r.Direction.Z, 1e-3)
}

func TestScreenToRaySingular(t *testing.T) {
	_, ok := ScreenToRay(1, 1, 10, 10, math.Mat4{})
	assert.False(t, ok)
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 10, Z: 2}, Direction: math.Vec3{X: 0, Y: -1, Z: 0}}
	d, ok := r.IntersectPlaneY(4)
	require.True(t, ok)
	assert.Equal(t, float32(6), d)

	_, ok = r.IntersectPlaneY(20)
	assert.False(t, ok, "plane behind origin")

	flat := Ray{Direction: math.Vec3{X: 1}}
	_, ok = flat.IntersectPlaneY(0)
	assert.False(t, ok)
}

func TestIntersectBounds(t *testing.T) {
	box := terrain.Bounds{Min: [3]float32{0, -1, 0}, Max: [3]float32{10, 1, 10}}

	down := Ray{Origin: math.Vec3{X: 5, Y: 20, Z: 5}, Direction: math.Vec3{Y: -1}}
	d, ok := down.IntersectBounds(box)
	require.True(t, ok)
	assert.Equal(t, float32(19), d)

	inside := Ray{Origin: math.Vec3{X: 5, Y: 0, Z: 5}, Direction: math.Vec3{X: 1}}
	d, ok = inside.IntersectBounds(box)
	require.True(t, ok)
	assert.Equal(t, float32(5), d)

	miss := Ray{Origin: math.Vec3{X: 50, Y: 20, Z: 5}, Direction: math.Vec3{Y: -1}}
	_, ok = miss.IntersectBounds(box)
	assert.False(t, ok)
}

func TestPickPatchReturnsNearest(t *testing.T) {
	grid, err := terrain.NewGrid(terrain.Flat(0), 10, 5, math.Vec3{})
	require.NoError(t, err)
	defer grid.Close()

	r := Ray{Origin: math.Vec3{X: 15, Y: 50, Z: -5}, Direction: math.Vec3{Y: -1}}
	hit, ok := PickPatch(grid.Drawables(), r)
	require.True(t, ok)
	assert.Equal(t, terrain.GridCoord{X: 1, Y: -1}, hit.Patch.GridIndex())
	assert.InDelta(t, 50, hit.Distance, 1e-4)
	assert.InDelta(t, 0, hit.Point.Y, 1e-4)

	outside := Ray{Origin: math.Vec3{X: 500, Y: 50, Z: 0}, Direction: math.Vec3{Y: -1}}
	_, ok = PickPatch(grid.Drawables(), outside)
	assert.False(t, ok)
}
