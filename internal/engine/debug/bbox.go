// Package debug provides overlays and capture helpers for inspecting the
// terrain window.
package debug

import (
	"iter"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
)

// LineVertex is one endpoint of an overlay line segment.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// BoundsVertexCount is the number of vertices emitted per box (12 edges × 2).
const BoundsVertexCount = 24

// LODColor returns the overlay color used for a detail level.
func LODColor(level terrain.LODLevel) [3]float32 {
	switch level {
	case terrain.LODCoarse:
		return [3]float32{0.95, 0.75, 0.2}
	case terrain.LODVeryCoarse:
		return [3]float32{0.9, 0.3, 0.25}
	default:
		return [3]float32{0.3, 0.85, 0.4}
	}
}

// AppendBounds appends the twelve edges of b, grown by padding, to dst.
func AppendBounds(dst []LineVertex, b terrain.Bounds, padding float32, color [3]float32) []LineVertex {
	x0, y0, z0 := b.Min[0]-padding, b.Min[1]-padding, b.Min[2]-padding
	x1, y1, z1 := b.Max[0]+padding, b.Max[1]+padding, b.Max[2]+padding

	corners := [8][3]float32{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1},
		{x0, y1, z0}, {x1, y1, z0}, {x1, y1, z1}, {x0, y1, z1},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // Bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // Top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // Vertical
	}
	for _, e := range edges {
		dst = append(dst,
			LineVertex{Position: corners[e[0]], Color: color},
			LineVertex{Position: corners[e[1]], Color: color},
		)
	}
	return dst
}

// PatchOutlines returns the bounds of every drawable colored by its level.
func PatchOutlines(dst []LineVertex, drawables iter.Seq[terrain.Drawable]) []LineVertex {
	dst = dst[:0]
	for d := range drawables {
		dst = AppendBounds(dst, d.Bounds(), 0, LODColor(d.LOD()))
	}
	return dst
}
