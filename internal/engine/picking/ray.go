// Package picking casts rays from the screen into the terrain window.
package picking

import (
	"iter"

	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Ray is a half-line in world space.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pixel coordinates inside a viewport to a world-space
// ray through the near and far planes of viewProj. ok is false if viewProj is
// singular.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, viewProj math.Mat4) (Ray, bool) {
	inv, ok := viewProj.Inverse()
	if !ok || viewportW <= 0 || viewportH <= 0 {
		return Ray{}, false
	}

	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Screen y grows downwards

	near := unproject(inv, math.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(inv, math.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if dir.Length() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, true
}

func unproject(inv math.Mat4, clip math.Vec4) math.Vec3 {
	p := inv.MulVec4(clip)
	if p[3] != 0 {
		return math.Vec3{X: p[0] / p[3], Y: p[1] / p[3], Z: p[2] / p[3]}
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectPlaneY returns the distance to the horizontal plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (t float32, ok bool) {
	if math32.Abs(r.Direction.Y) < 1e-3 {
		return 0, false
	}
	t = (planeY - r.Origin.Y) / r.Direction.Y
	return t, t >= 0
}

// IntersectBounds tests the ray against an axis-aligned box using the slab
// method. It returns the entry distance, or the exit distance if the origin
// is inside the box.
func (r Ray) IntersectBounds(b terrain.Bounds) (t float32, hit bool) {
	origin := r.Origin.Array()
	dir := r.Direction.Array()

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < b.Min[axis] || origin[axis] > b.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[axis] - origin[axis]) / dir[axis]
		t2 := (b.Max[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Hit is the result of a successful pick.
type Hit struct {
	Patch    terrain.Drawable
	Distance float32
	Point    math.Vec3
}

// PickPatch returns the nearest patch whose bounds the ray enters.
func PickPatch(drawables iter.Seq[terrain.Drawable], r Ray) (Hit, bool) {
	var best Hit
	found := false
	for d := range drawables {
		t, ok := r.IntersectBounds(d.Bounds())
		if !ok || (found && t >= best.Distance) {
			continue
		}
		best = Hit{Patch: d, Distance: t, Point: r.At(t)}
		found = true
	}
	return best, found
}
