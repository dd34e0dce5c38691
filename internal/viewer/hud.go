package viewer

import (
	"fmt"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Title formats the window title shown while flying.
func Title(fps float64, pos math.Vec3, stats terrain.UpdateStats) string {
	c := stats.LODCounts
	return fmt.Sprintf("%s | %.0f fps | pos %.0f, %.0f, %.0f | patch %s | lod %d/%d/%d",
		title, fps, pos.X, pos.Y, pos.Z, stats.Center,
		c[terrain.LODStandard], c[terrain.LODCoarse], c[terrain.LODVeryCoarse])
}

// ScaleSpeed adjusts a move speed by mouse wheel notches, one notch scaling
// it by speedWheelScale, clamped to a usable range.
func ScaleSpeed(speed, wheel float32) float32 {
	for ; wheel > 0; wheel-- {
		speed *= speedWheelScale
	}
	for ; wheel < 0; wheel++ {
		speed /= speedWheelScale
	}
	return min(max(speed, minMoveSpeed), maxMoveSpeed)
}
