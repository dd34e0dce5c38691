// Package lighting describes the directional sun lighting the terrain.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Sun is a directional light given by compass angles in degrees.
type Sun struct {
	Azimuth   float32 // Rotation around +Y, 0 points along +Z
	Elevation float32 // Angle above the horizon
	Ambient   [3]float32
	Diffuse   [3]float32
}

// DefaultSun is a late-morning sun with soft ambient light.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   135,
		Elevation: 50,
		Ambient:   [3]float32{0.35, 0.37, 0.42},
		Diffuse:   [3]float32{1.0, 0.95, 0.85},
	}
}

// Direction returns the normalized vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth and elevation in degrees to a unit vector
// pointing towards the light.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := azimuth * math32.Pi / 180
	el := math32.Max(-90, math32.Min(90, elevation)) * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(el) * math32.Sin(az),
		Y: math32.Sin(el),
		Z: math32.Cos(el) * math32.Cos(az),
	}
}
