package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

func TestAppendBounds(t *testing.T) {
	b := terrain.Bounds{Min: [3]float32{0, 1, 2}, Max: [3]float32{10, 5, 12}}
	lines := AppendBounds(nil, b, 1, [3]float32{1, 0, 0})

	require.Len(t, lines, BoundsVertexCount)
	for _, v := range lines {
		assert.Contains(t, []float32{-1, 11}, v.Position[0])
		assert.Contains(t, []float32{0, 6}, v.Position[1])
		assert.Contains(t, []float32{1, 13}, v.Position[2])
		assert.Equal(t, [3]float32{1, 0, 0}, v.Color)
	}
}

func TestPatchOutlinesColorByLevel(t *testing.T) {
	grid, err := terrain.NewGrid(terrain.Flat(0), 10, 3, math.Vec3{})
	require.NoError(t, err)
	defer grid.Close()
	grid.SetLODPolicy(terrain.DistancePolicy{CoarseFrom: 10, VeryCoarseFrom: 100})
	grid.Update(math.Vec3{X: 5, Z: 5})

	lines := PatchOutlines(nil, grid.Drawables())
	require.Len(t, lines, 9*BoundsVertexCount)

	coarse := 0
	for i := 0; i < len(lines); i += BoundsVertexCount {
		if lines[i].Color == LODColor(terrain.LODCoarse) {
			coarse++
		}
	}
	assert.Equal(t, 8, coarse)
}

func TestLODColorsDistinct(t *testing.T) {
	assert.NotEqual(t, LODColor(terrain.LODStandard), LODColor(terrain.LODCoarse))
	assert.NotEqual(t, LODColor(terrain.LODCoarse), LODColor(terrain.LODVeryCoarse))
	assert.Equal(t, LODColor(terrain.LODStandard), LODColor(terrain.LODLevel(9)))
}

func TestScreenshotterSavePixelsFlips(t *testing.T) {
	dir := t.TempDir()
	s := NewScreenshotter(filepath.Join(dir, "shots"), "terrain")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// Bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}
	path, err := s.SavePixels(pixels, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shots", "terrain_2024-05-01_12-30-00.000.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.Equal(t, uint32(0xffff), b)
}

func TestScreenshotterRejectsShortBuffer(t *testing.T) {
	s := NewScreenshotter(t.TempDir(), "x")
	_, err := s.SavePixels(make([]byte, 7), 2, 1)
	assert.Error(t, err)
}
