package world

import (
	"iter"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Waypoints returns steps+1 evenly spaced points from `from` to `to`,
// both included.
func Waypoints(from, to math.Vec3, steps int) []math.Vec3 {
	if steps < 1 {
		return []math.Vec3{to}
	}
	points := make([]math.Vec3, 0, steps+1)
	delta := to.Sub(from)
	for i := 0; i <= steps; i++ {
		t := float32(i) / float32(steps)
		points = append(points, from.Add(delta.Scale(t)))
	}
	return points
}

// WalkStep is the outcome of one Update along a walk.
type WalkStep struct {
	Index     int
	Viewpoint math.Vec3
	Stats     terrain.UpdateStats
}

// Walk updates the world at each point in turn, yielding the statistics of
// every update.
func (w *World) Walk(points []math.Vec3) iter.Seq[WalkStep] {
	return func(yield func(WalkStep) bool) {
		for i, p := range points {
			stats := w.Update(p)
			if !yield(WalkStep{Index: i, Viewpoint: p, Stats: stats}) {
				return
			}
		}
	}
}

// WalkTotals accumulates statistics across a walk.
type WalkTotals struct {
	Updates    int
	Steps      int
	Added      int
	Evicted    int
	LODChanges int
	MaxAdded   int
}

// Add folds one update into the totals.
func (t *WalkTotals) Add(s terrain.UpdateStats) {
	t.Updates++
	t.Steps += s.Steps
	t.Added += s.Added
	t.Evicted += s.Evicted
	t.LODChanges += s.LODChanges
	t.MaxAdded = max(t.MaxAdded, s.Added)
}
