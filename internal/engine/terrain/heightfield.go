package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
)

// HeightField maps a world-space ground position to an elevation.
// Implementations must be pure: the same input always yields the same height.
type HeightField interface {
	Sample(x, z float32) float32
}

// HeightFunc adapts an ordinary function to HeightField.
type HeightFunc func(x, z float32) float32

// Sample implements HeightField.
func (f HeightFunc) Sample(x, z float32) float32 {
	return f(x, z)
}

// Flat is a HeightField with constant elevation.
type Flat float32

// Sample implements HeightField.
func (f Flat) Sample(_, _ float32) float32 {
	return float32(f)
}

// Heightmap is a HeightField backed by a regular grid of altitudes.
// Altitudes[x][z] is the elevation at world (x*CellSize, z*CellSize);
// positions in between are bilinearly interpolated and positions outside
// the grid are clamped to its edge.
type Heightmap struct {
	Altitudes [][]float32
	SizeX     int
	SizeZ     int
	CellSize  float32
}

// NewHeightmap validates altitudes and wraps them as a HeightField.
func NewHeightmap(altitudes [][]float32, cellSize float32) (*Heightmap, error) {
	if len(altitudes) < 2 {
		return nil, fmt.Errorf("heightmap: need at least 2 columns, got %d", len(altitudes))
	}
	sizeZ := len(altitudes[0])
	if sizeZ < 2 {
		return nil, fmt.Errorf("heightmap: need at least 2 rows, got %d", sizeZ)
	}
	for x, col := range altitudes {
		if len(col) != sizeZ {
			return nil, fmt.Errorf("heightmap: column %d has %d rows, want %d", x, len(col), sizeZ)
		}
	}
	if !(cellSize > 0) {
		return nil, fmt.Errorf("heightmap: cell size must be positive, got %g", cellSize)
	}

	return &Heightmap{
		Altitudes: altitudes,
		SizeX:     len(altitudes),
		SizeZ:     sizeZ,
		CellSize:  cellSize,
	}, nil
}

// Sample implements HeightField.
func (h *Heightmap) Sample(x, z float32) float32 {
	fx := clampf(x/h.CellSize, 0, float32(h.SizeX-1))
	fz := clampf(z/h.CellSize, 0, float32(h.SizeZ-1))

	cellX := min(int(fx), h.SizeX-2)
	cellZ := min(int(fz), h.SizeZ-2)

	fracX := fx - float32(cellX)
	fracZ := fz - float32(cellZ)

	// South edge (lower z), then north edge, then lerp across z
	south := h.Altitudes[cellX][cellZ]*(1-fracX) + h.Altitudes[cellX+1][cellZ]*fracX
	north := h.Altitudes[cellX][cellZ+1]*(1-fracX) + h.Altitudes[cellX+1][cellZ+1]*fracX
	return south*(1-fracZ) + north*fracZ
}

func clampf(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
