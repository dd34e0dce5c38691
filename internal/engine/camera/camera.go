// Package camera provides the cameras that drive the terrain viewpoint.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

var worldUp = math.Vec3{Y: 1}

const maxPitch = 1.55 // Just under straight up or down

// FlyCamera is a free-flying first-person camera. Yaw 0 looks along -Z.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32 // Radians, positive turns right
	Pitch    float32 // Radians, positive looks up

	MoveSpeed       float32 // World units per second
	LookSensitivity float32 // Radians per pixel of mouse motion
}

// NewFlyCamera creates a camera at pos looking slightly down.
func NewFlyCamera(pos math.Vec3, moveSpeed, lookSensitivity float32) *FlyCamera {
	return &FlyCamera{
		Position:        pos,
		Pitch:           -0.3,
		MoveSpeed:       moveSpeed,
		LookSensitivity: lookSensitivity,
	}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: math32.Sin(c.Yaw) * cp,
		Y: math32.Sin(c.Pitch),
		Z: -math32.Cos(c.Yaw) * cp,
	}
}

// Right returns the unit horizontal right vector.
func (c *FlyCamera) Right() math.Vec3 {
	return math.Vec3{X: math32.Cos(c.Yaw), Z: math32.Sin(c.Yaw)}
}

// Look applies a mouse delta in pixels.
func (c *FlyCamera) Look(dx, dy float32) {
	c.Yaw = math32.Mod(c.Yaw+dx*c.LookSensitivity, 2*math32.Pi)
	c.Pitch = clamp(c.Pitch-dy*c.LookSensitivity, -maxPitch, maxPitch)
}

// Move translates the camera for dt seconds. forward, right and up are
// axis inputs in [-1, 1].
func (c *FlyCamera) Move(forward, right, up, dt float32) {
	step := c.MoveSpeed * dt
	delta := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(worldUp.Scale(up))
	c.Position = c.Position.Add(delta.Scale(step))
}

// KeepAbove lifts the camera so it stays at least clearance above field.
func (c *FlyCamera) KeepAbove(field terrain.HeightField, clearance float32) {
	floor := field.Sample(c.Position.X, c.Position.Z) + clearance
	if c.Position.Y < floor {
		c.Position.Y = floor
	}
}

// ViewMatrix returns the world-to-view transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), worldUp)
}

// OrbitCamera circles a target point. The tuner uses it to look at the
// whole window from above.
type OrbitCamera struct {
	Target   math.Vec3
	Distance float32
	Pitch    float32 // Elevation above the target, radians
	Yaw      float32 // Rotation around +Y, radians

	MinDistance float32
	MaxDistance float32

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates an orbit camera looking down on target.
func NewOrbitCamera(target math.Vec3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:          target,
		Distance:        distance,
		Pitch:           0.9,
		MinDistance:     10,
		MaxDistance:     20000,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	horiz := c.Distance * math32.Cos(c.Pitch)
	return c.Target.Add(math.Vec3{
		X: horiz * math32.Sin(c.Yaw),
		Y: c.Distance * math32.Sin(c.Pitch),
		Z: horiz * math32.Cos(c.Yaw),
	})
}

// ViewMatrix returns the world-to-view transform.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, worldUp)
}

// HandleDrag rotates around the target by a mouse drag in pixels.
func (c *OrbitCamera) HandleDrag(dx, dy float32) {
	c.Yaw -= dx * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+dy*c.DragSensitivity, 0.05, maxPitch)
}

// HandleZoom scales the distance by a scroll delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Pan moves the target along the ground relative to the view direction.
func (c *OrbitCamera) Pan(forward, right float32) {
	speed := c.Distance * 0.01
	sin, cos := math32.Sin(c.Yaw), math32.Cos(c.Yaw)
	c.Target.X += (-sin*forward + cos*right) * speed
	c.Target.Z += (-cos*forward - sin*right) * speed
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
