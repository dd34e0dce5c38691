package terrain

import "github.com/chewxy/math32"

// NoiseField is a HeightField built from seeded 2D Perlin noise summed over
// several octaves (fractal Brownian motion).
type NoiseField struct {
	Octaves     int
	Frequency   float32 // Base frequency in cycles per world unit
	Amplitude   float32 // Peak elevation
	Lacunarity  float32 // Frequency multiplier per octave
	Persistence float32 // Amplitude multiplier per octave

	perm [512]uint8
}

// NewNoiseField creates a noise height field from a seed.
func NewNoiseField(seed int64, octaves int, frequency, amplitude, lacunarity, persistence float32) *NoiseField {
	n := &NoiseField{
		Octaves:     max(octaves, 1),
		Frequency:   frequency,
		Amplitude:   amplitude,
		Lacunarity:  lacunarity,
		Persistence: persistence,
	}

	var base [256]uint8
	for i := range base {
		base[i] = uint8(i)
	}

	// Fisher-Yates driven by an LCG
	s := uint64(seed)
	for i := 255; i > 0; i-- {
		s = s*6364136223846793005 + 1442695040888963407
		j := int((s >> 33) % uint64(i+1))
		base[i], base[j] = base[j], base[i]
	}

	for i := 0; i < 256; i++ {
		n.perm[i] = base[i]
		n.perm[i+256] = base[i]
	}
	return n
}

// Sample implements HeightField.
func (n *NoiseField) Sample(x, z float32) float32 {
	var total, norm float32
	freq := n.Frequency
	amp := float32(1)

	for i := 0; i < n.Octaves; i++ {
		total += n.noise2(x*freq, z*freq) * amp
		norm += amp
		amp *= n.Persistence
		freq *= n.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm * n.Amplitude
}

// noise2 returns Perlin noise at (x, y), roughly in [-1, 1].
func (n *NoiseField) noise2(x, y float32) float32 {
	fx := math32.Floor(x)
	fy := math32.Floor(y)
	xi := int(int64(fx) & 255)
	yi := int(int64(fy) & 255)
	xf := x - fx
	yf := y - fy

	u := fade(xf)
	v := fade(yf)

	p := &n.perm
	aa := p[int(p[xi])+yi]
	ab := p[int(p[xi])+yi+1]
	ba := p[int(p[xi+1])+yi]
	bb := p[int(p[xi+1])+yi+1]

	x1 := lerp(u, grad2(aa, xf, yf), grad2(ba, xf-1, yf))
	x2 := lerp(u, grad2(ab, xf, yf-1), grad2(bb, xf-1, yf-1))
	return lerp(v, x1, x2)
}

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float32) float32 {
	return a + t*(b-a)
}

func grad2(hash uint8, x, y float32) float32 {
	switch hash & 3 {
	case 0:
		return x + y
	case 1:
		return -x + y
	case 2:
		return x - y
	default:
		return -x - y
	}
}
