// Package terrain streams a square window of height-field patches around a
// moving viewpoint and gives each patch one of three shared index topologies
// chosen by its distance from the viewpoint.
package terrain

import (
	"fmt"
	stdmath "math"
)

// VerticesPerSide is the sampling resolution of every patch along each axis.
// VerticesPerSide-1 must be divisible by every LOD resolution.
const VerticesPerSide = 33

// verticesPerPatch is the number of samples stored per patch.
const verticesPerPatch = VerticesPerSide * VerticesPerSide

// Vertex is one height-field sample as laid out in the vertex buffer.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// GridCoord identifies a patch in the infinite planar patch grid.
// X indexes world x, Y indexes world z.
type GridCoord struct {
	X, Y int32
}

// String implements fmt.Stringer.
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Chebyshev returns the square-window distance between two coordinates,
// saturated at MaxInt32.
func (c GridCoord) Chebyshev(other GridCoord) int32 {
	d := max(abs64(int64(c.X)-int64(other.X)), abs64(int64(c.Y)-int64(other.Y)))
	return int32(min(d, stdmath.MaxInt32))
}

// LODLevel is one of the precomputed tessellation densities.
type LODLevel uint8

const (
	LODStandard LODLevel = iota
	LODCoarse
	LODVeryCoarse

	lodLevelCount = 3
)

// LODLevels lists every level in order of decreasing density.
var LODLevels = [lodLevelCount]LODLevel{LODStandard, LODCoarse, LODVeryCoarse}

// lodResolutions is the sample decimation factor of each level.
var lodResolutions = [lodLevelCount]uint32{1, 4, 8}

// Valid reports whether l is one of the defined levels.
func (l LODLevel) Valid() bool {
	return l < lodLevelCount
}

// Resolution returns the sample step used by the level's topology.
// Invalid levels report the Standard resolution.
func (l LODLevel) Resolution() uint32 {
	if !l.Valid() {
		return lodResolutions[LODStandard]
	}
	return lodResolutions[l]
}

// String implements fmt.Stringer.
func (l LODLevel) String() string {
	switch l {
	case LODStandard:
		return "standard"
	case LODCoarse:
		return "coarse"
	case LODVeryCoarse:
		return "very-coarse"
	default:
		return fmt.Sprintf("LODLevel(%d)", uint8(l))
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
