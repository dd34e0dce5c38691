package terrain

// LODPolicy chooses a level of detail from a patch's ground distance to the
// viewpoint. Policies need not be monotonic; the grid applies whatever the
// policy returns.
type LODPolicy interface {
	Classify(distance float32) LODLevel
}

// LODFunc adapts an ordinary function to LODPolicy.
type LODFunc func(distance float32) LODLevel

// Classify implements LODPolicy.
func (f LODFunc) Classify(distance float32) LODLevel {
	return f(distance)
}

// StandardPolicy keeps every patch at full detail. It is the grid default.
type StandardPolicy struct{}

// Classify implements LODPolicy.
func (StandardPolicy) Classify(float32) LODLevel {
	return LODStandard
}

// DistancePolicy picks a level from two distance thresholds:
// d < CoarseFrom is Standard, d < VeryCoarseFrom is Coarse, anything further
// is VeryCoarse.
type DistancePolicy struct {
	CoarseFrom     float32
	VeryCoarseFrom float32
}

// Classify implements LODPolicy.
func (p DistancePolicy) Classify(distance float32) LODLevel {
	switch {
	case distance < p.CoarseFrom:
		return LODStandard
	case distance < p.VeryCoarseFrom:
		return LODCoarse
	default:
		return LODVeryCoarse
	}
}
