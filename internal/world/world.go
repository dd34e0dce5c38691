// Package world builds the streamed terrain from configuration and drives it
// from a moving viewpoint.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// World owns the height field, the patch grid and the active LOD settings.
type World struct {
	Field terrain.HeightField
	Grid  *terrain.Grid

	lod config.LODConfig
	log *zap.Logger
}

// NewField returns the procedural height field described by cfg.
func NewField(cfg config.HeightFieldConfig) terrain.HeightField {
	if cfg.Amplitude == 0 {
		return terrain.Flat(0)
	}
	return terrain.NewNoiseField(cfg.Seed, cfg.Octaves, cfg.Frequency, cfg.Amplitude, cfg.Lacunarity, cfg.Persistence)
}

// Policy returns the LOD policy described by cfg. A disabled configuration
// keeps every patch at Standard detail.
func Policy(cfg config.LODConfig) terrain.LODPolicy {
	if !cfg.Enabled {
		return terrain.StandardPolicy{}
	}
	return terrain.DistancePolicy{
		CoarseFrom:     cfg.CoarseFrom,
		VeryCoarseFrom: cfg.VeryCoarseFrom,
	}
}

// New builds the grid around start. LOD levels are assigned immediately so
// the first frame already draws at the configured detail.
func New(cfg *config.Config, start math.Vec3) (*World, error) {
	return NewWithField(cfg, NewField(cfg.HeightField), start)
}

// NewWithField is New with a caller-supplied height field.
func NewWithField(cfg *config.Config, field terrain.HeightField, start math.Vec3) (*World, error) {
	log := logger.Named("world")

	grid, err := terrain.NewGrid(field, cfg.Terrain.PatchSize, cfg.Terrain.PatchesPerSide, start,
		terrain.WithLogger(logger.Named("terrain")))
	if err != nil {
		return nil, fmt.Errorf("creating terrain grid: %w", err)
	}

	w := &World{
		Field: field,
		Grid:  grid,
		log:   log,
	}
	w.SetLOD(cfg.Terrain.LOD)
	w.Grid.Update(start)
	return w, nil
}

// LOD returns the active LOD settings.
func (w *World) LOD() config.LODConfig {
	return w.lod
}

// SetLOD replaces the LOD settings. The new levels apply from the next Update.
func (w *World) SetLOD(cfg config.LODConfig) {
	w.lod = cfg
	w.Grid.SetLODPolicy(Policy(cfg))
	w.log.Debug("lod policy changed",
		zap.Bool("enabled", cfg.Enabled),
		zap.Float32("coarse_from", cfg.CoarseFrom),
		zap.Float32("very_coarse_from", cfg.VeryCoarseFrom),
	)
}

// Update moves the window to viewpoint.
func (w *World) Update(viewpoint math.Vec3) terrain.UpdateStats {
	return w.Grid.Update(viewpoint)
}

// HeightAt samples the height field.
func (w *World) HeightAt(x, z float32) float32 {
	return w.Field.Sample(x, z)
}

// Close releases the grid.
func (w *World) Close() {
	if w.Grid != nil {
		w.Grid.Close()
		w.Grid = nil
	}
}
