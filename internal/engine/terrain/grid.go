package terrain

import (
	"fmt"
	"iter"
	stdmath "math"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Geometry is the read-only view of a live patch used by depth-only passes
// such as shadow maps and picking.
type Geometry interface {
	Vertices() []Vertex
	Indices() []uint32
	Bounds() Bounds
}

// Drawable is the read-only view of a live patch used by the color pass.
type Drawable interface {
	Geometry
	GridIndex() GridCoord
	LOD() LODLevel
}

// UpdateStats summarizes the work done by one Update call.
type UpdateStats struct {
	Center     GridCoord
	Steps      int // Patch boundaries the window center moved across
	Added      int
	Evicted    int
	LODChanges int
	LODCounts  [lodLevelCount]int
}

// MaxPatchesPerSide bounds the window so every coordinate a grid touches,
// including the skip-ahead margin, stays inside int32.
const MaxPatchesPerSide = 1<<16 - 1

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the logger used for grid diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(g *Grid) {
		g.log = log
	}
}

// Grid keeps a square window of patches centred on the viewpoint's patch.
//
// A patch exists for coordinate c iff c.Chebyshev(Center()) <= WindowRadius().
// Grid is not safe for concurrent use; call Update from the render loop.
type Grid struct {
	field     HeightField
	patchSize float32
	radius    int32
	center    GridCoord

	patches []*Patch
	byCoord map[GridCoord]*Patch

	topologies *TopologyCache
	policy     LODPolicy

	stats UpdateStats
	log   *zap.Logger
}

// NewGrid builds the initial window of patchesPerSide×patchesPerSide patches
// around initial. Every patch starts at Standard detail; levels are assigned
// by the first Update.
func NewGrid(field HeightField, patchSize float32, patchesPerSide int, initial math.Vec3, opts ...Option) (*Grid, error) {
	if field == nil {
		return nil, ErrNilHeightField
	}
	if !(patchSize > 0) || math32.IsInf(patchSize, 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidPatchSize, patchSize)
	}
	if patchesPerSide < 1 || patchesPerSide%2 == 0 || patchesPerSide > MaxPatchesPerSide {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, patchesPerSide)
	}

	topologies, err := NewTopologyCache(VerticesPerSide)
	if err != nil {
		return nil, err
	}

	side := patchesPerSide
	g := &Grid{
		field:      field,
		patchSize:  patchSize,
		radius:     int32(patchesPerSide-1) / 2,
		patches:    make([]*Patch, 0, side*side),
		byCoord:    make(map[GridCoord]*Patch, side*side),
		topologies: topologies,
		policy:     StandardPolicy{},
	}
	g.center = g.clampCenter(PosToPatch(patchSize, initial))
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Named("terrain")
	}

	for ix := g.center.X - g.radius; ix <= g.center.X+g.radius; ix++ {
		for iy := g.center.Y - g.radius; iy <= g.center.Y+g.radius; iy++ {
			g.add(GridCoord{ix, iy})
		}
	}
	g.stats = UpdateStats{Center: g.center, Added: len(g.patches)}
	g.stats.LODCounts[LODStandard] = len(g.patches)

	g.log.Info("terrain grid created",
		zap.Stringer("center", g.center),
		zap.Int32("radius", g.radius),
		zap.Float32("patch_size", patchSize),
		zap.Int("patches", len(g.patches)),
	)
	return g, nil
}

// PosToPatch returns the grid coordinate of the patch containing pos.
// Coordinates beyond the int32 range saturate and NaN maps to 0.
func PosToPatch(patchSize float32, pos math.Vec3) GridCoord {
	return GridCoord{
		X: patchIndex(pos.X / patchSize),
		Y: patchIndex(pos.Z / patchSize),
	}
}

func patchIndex(q float32) int32 {
	switch {
	case math32.IsNaN(q):
		return 0
	case q >= -stdmath.MinInt32: // 2^31, exact in float32
		return stdmath.MaxInt32
	case q < stdmath.MinInt32:
		return stdmath.MinInt32
	}
	return int32(math32.Floor(q))
}

// clampCenter keeps c far enough from the int32 limits that the window and
// the skip-ahead start position never overflow.
func (g *Grid) clampCenter(c GridCoord) GridCoord {
	margin := 2 * (2*int64(g.radius) + 1)
	lo, hi := int64(stdmath.MinInt32)+margin, int64(stdmath.MaxInt32)-margin
	return GridCoord{
		X: int32(min(max(int64(c.X), lo), hi)),
		Y: int32(min(max(int64(c.Y), lo), hi)),
	}
}

// SetLODPolicy replaces the policy used by subsequent updates.
// A nil policy restores StandardPolicy.
func (g *Grid) SetLODPolicy(policy LODPolicy) {
	if policy == nil {
		policy = StandardPolicy{}
	}
	g.policy = policy
}

// LODPolicy returns the active policy.
func (g *Grid) LODPolicy() LODPolicy {
	return g.policy
}

// Update moves the window to the viewpoint's patch, evicts patches that left
// it and reassigns every patch's level of detail. Patches already inside the
// window are never resampled.
func (g *Grid) Update(viewpoint math.Vec3) UpdateStats {
	target := g.clampCenter(PosToPatch(g.patchSize, viewpoint))
	stats := UpdateStats{}

	for _, axis := range [2]int{axisX, axisY} {
		delta := int64(target.get(axis)) - int64(g.center.get(axis))
		stats.Steps += int(abs64(delta))
		g.skipAhead(axis, target)
		for g.center.get(axis) != target.get(axis) {
			stats.Added += g.step(axis, sign(delta), target)
		}
	}

	stats.Evicted = g.evict()
	g.assignLOD(viewpoint, &stats)
	stats.Center = g.center
	g.stats = stats

	if stats.Steps > 0 {
		g.log.Debug("terrain window moved",
			zap.Stringer("center", g.center),
			zap.Int("steps", stats.Steps),
			zap.Int("added", stats.Added),
			zap.Int("evicted", stats.Evicted),
		)
	}
	return stats
}

const (
	axisX = iota
	axisY
)

func (c GridCoord) get(axis int) int32 {
	if axis == axisX {
		return c.X
	}
	return c.Y
}

func (c *GridCoord) set(axis int, v int32) {
	if axis == axisX {
		c.X = v
	} else {
		c.Y = v
	}
}

func sign(v int64) int32 {
	if v < 0 {
		return -1
	}
	return 1
}

// skipAhead jumps the center over steps whose new edge would lie outside the
// final window, leaving at most one window diameter of steps to walk.
func (g *Grid) skipAhead(axis int, target GridCoord) {
	diameter := 2*int64(g.radius) + 1
	delta := int64(target.get(axis)) - int64(g.center.get(axis))
	if abs64(delta) > diameter {
		g.center.set(axis, int32(int64(target.get(axis))-int64(sign(delta))*diameter))
	}
}

// step moves the center one patch along axis in direction dir and fills the
// new leading edge. Edge patches outside the target window would be evicted
// by the same Update, so they are not created. It returns the number added.
func (g *Grid) step(axis int, dir int32, target GridCoord) int {
	g.center.set(axis, g.center.get(axis)+dir)
	edge := g.center.get(axis) + dir*g.radius

	other := axisY
	if axis == axisY {
		other = axisX
	}
	mid := g.center.get(other)

	added := 0
	for o := mid - g.radius; o <= mid+g.radius; o++ {
		var coord GridCoord
		coord.set(axis, edge)
		coord.set(other, o)

		if coord.Chebyshev(target) > g.radius {
			continue
		}
		if _, ok := g.byCoord[coord]; ok {
			continue
		}
		g.add(coord)
		added++
	}
	return added
}

func (g *Grid) add(coord GridCoord) {
	p := NewPatch(g.field, coord, g.patchSize, g.topologies.Get(LODStandard))
	g.patches = append(g.patches, p)
	g.byCoord[coord] = p
}

// evict drops every patch outside the window around the current center.
func (g *Grid) evict() int {
	kept := g.patches[:0]
	evicted := 0
	for _, p := range g.patches {
		if p.coord.Chebyshev(g.center) <= g.radius {
			kept = append(kept, p)
			continue
		}
		delete(g.byCoord, p.coord)
		p.release()
		evicted++
	}
	clear(g.patches[len(kept):])
	g.patches = kept
	return evicted
}

func (g *Grid) assignLOD(viewpoint math.Vec3, stats *UpdateStats) {
	ground := viewpoint.Ground()
	for _, p := range g.patches {
		level := g.policy.Classify(p.WorldCenter().Distance(ground))
		if !level.Valid() {
			level = LODStandard
		}
		if p.setTopology(g.topologies.Get(level)) {
			stats.LODChanges++
		}
		stats.LODCounts[level]++
	}
}

// Drawables returns the live patches for the color pass. The sequence may be
// iterated any number of times but is only valid until the next Update.
func (g *Grid) Drawables() iter.Seq[Drawable] {
	patches := g.patches
	return func(yield func(Drawable) bool) {
		for _, p := range patches {
			if !yield(p) {
				return
			}
		}
	}
}

// Geometries returns the live patches for depth-only passes. The sequence may
// be iterated any number of times but is only valid until the next Update.
func (g *Grid) Geometries() iter.Seq[Geometry] {
	patches := g.patches
	return func(yield func(Geometry) bool) {
		for _, p := range patches {
			if !yield(p) {
				return
			}
		}
	}
}

// Patch returns the live patch at coord.
func (g *Grid) Patch(coord GridCoord) (*Patch, bool) {
	p, ok := g.byCoord[coord]
	return p, ok
}

// Topology returns the grid's shared topology for level.
func (g *Grid) Topology(level LODLevel) *Topology {
	return g.topologies.Get(level)
}

// Center returns the coordinate of the window's central patch.
func (g *Grid) Center() GridCoord {
	return g.center
}

// WindowRadius returns the Chebyshev radius of the window in patches.
func (g *Grid) WindowRadius() int32 {
	return g.radius
}

// PatchSize returns the world-space side length of every patch.
func (g *Grid) PatchSize() float32 {
	return g.patchSize
}

// Len returns the number of live patches.
func (g *Grid) Len() int {
	return len(g.patches)
}

// Stats returns the summary of the most recent Update, or of construction.
func (g *Grid) Stats() UpdateStats {
	return g.stats
}

// Close releases every patch and the cached topologies. The grid must not be
// used afterwards.
func (g *Grid) Close() {
	for _, p := range g.patches {
		p.release()
	}
	g.patches = nil
	clear(g.byCoord)
	g.topologies.Close()
}
