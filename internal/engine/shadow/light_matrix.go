package shadow

import (
	"iter"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// BoundsOf returns the union of the bounds of every geometry. ok is false for
// an empty sequence.
func BoundsOf(geoms iter.Seq[terrain.Geometry]) (b terrain.Bounds, ok bool) {
	for g := range geoms {
		gb := g.Bounds()
		if !ok {
			b, ok = gb, true
			continue
		}
		for i := 0; i < 3; i++ {
			b.Min[i] = math32.Min(b.Min[i], gb.Min[i])
			b.Max[i] = math32.Max(b.Max[i], gb.Max[i])
		}
	}
	return b, ok
}

func center(b terrain.Bounds) math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// radius returns the half-diagonal of b.
func radius(b terrain.Bounds) float32 {
	return math.Vec3{
		X: (b.Max[0] - b.Min[0]) / 2,
		Y: (b.Max[1] - b.Min[1]) / 2,
		Z: (b.Max[2] - b.Min[2]) / 2,
	}.Length()
}

// DirectionalLightMatrix returns the light view-projection covering b for a
// directional light. lightDir points towards the light.
func DirectionalLightMatrix(lightDir math.Vec3, b terrain.Bounds) math.Mat4 {
	c := center(b)
	r := max(radius(b), 1)
	dir := lightDir.Normalize()

	distance := r * 2
	eye := c.Add(dir.Scale(distance))

	up := math.Vec3{Y: 1}
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(eye, c, up)

	// Pad the box to keep edge texels inside the map
	half := r * 1.1
	proj := math.Ortho(-half, half, -half, half, 0.1, distance+half)
	return proj.Mul(view)
}
