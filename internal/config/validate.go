package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks settings that would otherwise fail when the terrain grid
// or window is constructed.
func (c *Config) Validate() error {
	t := c.Terrain
	if t.PatchesPerSide < 1 || t.PatchesPerSide%2 == 0 {
		return fmt.Errorf("%w: terrain.patches_per_side must be a positive odd number, got %d", ErrInvalid, t.PatchesPerSide)
	}
	if t.PatchSize <= 0 {
		return fmt.Errorf("%w: terrain.patch_size must be positive, got %g", ErrInvalid, t.PatchSize)
	}
	if t.LOD.Enabled && t.LOD.CoarseFrom < 0 {
		return fmt.Errorf("%w: terrain.lod.coarse_from must not be negative", ErrInvalid)
	}
	if c.HeightField.Octaves < 1 {
		return fmt.Errorf("%w: heightfield.octaves must be at least 1, got %d", ErrInvalid, c.HeightField.Octaves)
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: graphics size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	return nil
}
