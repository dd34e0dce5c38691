package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		azimuth, elevation float32
		x, y, z            float32
	}{
		{0, 0, 0, 0, 1},
		{90, 0, 1, 0, 0},
		{180, 0, 0, 0, -1},
		{0, 90, 0, 1, 0},
		{0, 120, 0, 1, 0},
	}
	for _, tt := range tests {
		d := SunDirection(tt.azimuth, tt.elevation)
		assert.InDelta(t, tt.x, d.X, 1e-5, "az %v el %v", tt.azimuth, tt.elevation)
		assert.InDelta(t, tt.y, d.Y, 1e-5, "az %v el %v", tt.azimuth, tt.elevation)
		assert.InDelta(t, tt.z, d.Z, 1e-5, "az %v el %v", tt.azimuth, tt.elevation)
	}
}

func TestDefaultSunIsUnitAndAboveHorizon(t *testing.T) {
	d := DefaultSun().Direction()
	assert.InDelta(t, 1, d.Length(), 1e-5)
	assert.Positive(t, d.Y)
}
