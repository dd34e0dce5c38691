package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func TestFlyCameraDefaultsLookAlongNegativeZ(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, 10, 0.01)
	c.Pitch = 0

	f := c.Forward()
	assert.InDelta(t, 0, f.X, 1e-6)
	assert.InDelta(t, -1, f.Z, 1e-6)
	assert.InDelta(t, 1, c.Right().X, 1e-6)
}

func TestFlyCameraMove(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 1, Y: 2, Z: 3}, 10, 0.01)
	c.Pitch = 0

	c.Move(1, 0, 0, 0.5)
	assert.InDelta(t, -2, c.Position.Z, 1e-5)

	c.Move(0, 1, 1, 1)
	assert.InDelta(t, 11, c.Position.X, 1e-5)
	assert.InDelta(t, 12, c.Position.Y, 1e-5)
}

func TestFlyCameraPitchClamped(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, 10, 0.01)
	c.Look(0, -100000)
	assert.Equal(t, float32(maxPitch), c.Pitch)
	c.Look(0, 100000)
	assert.Equal(t, float32(-maxPitch), c.Pitch)
}

func TestFlyCameraYawWraps(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, 10, 1)
	c.Look(7, 0)
	assert.InDelta(t, 7-2*math32.Pi, c.Yaw, 1e-5)
}

func TestFlyCameraKeepAbove(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 3, Y: 1, Z: 4}, 10, 0.01)
	c.KeepAbove(terrain.Flat(20), 5)
	assert.Equal(t, float32(25), c.Position.Y)

	c.Position.Y = 100
	c.KeepAbove(terrain.Flat(20), 5)
	assert.Equal(t, float32(100), c.Position.Y)
}

func TestFlyCameraViewMatrixCentersForward(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 5, Y: 10, Z: 5}, 10, 0.01)
	c.Yaw = 0.7

	ahead := c.Position.Add(c.Forward().Scale(50))
	p := c.ViewMatrix().TransformVec3(ahead)
	assert.InDelta(t, 0, p.X, 1e-3)
	assert.InDelta(t, 0, p.Y, 1e-3)
	assert.InDelta(t, -50, p.Z, 1e-3)
}

func TestOrbitCamera(t *testing.T) {
	c := NewOrbitCamera(math.Vec3{X: 10, Z: 10}, 100)
	c.Pitch = math32.Pi / 2 * 0.999

	pos := c.Position()
	assert.InDelta(t, 100, pos.Y, 0.1)
	assert.InDelta(t, 100, pos.Distance(c.Target), 1e-3)

	c.HandleZoom(100)
	assert.Equal(t, c.MinDistance, c.Distance)

	c.Yaw = 0
	c.Pan(1, 0)
	assert.Less(t, c.Target.Z, float32(10))
}
