package terrain

import "fmt"

// BuildIndices returns the triangle list covering a sideLength×sideLength
// vertex grid sampled every resolution vertices. Each cell emits two
// triangles sharing the edge between its (r+R, c) and (r, c+R) corners.
//
// The output depends only on its arguments.
func BuildIndices(resolution, sideLength uint32) ([]uint32, error) {
	if resolution == 0 || sideLength < 2 || (sideLength-1)%resolution != 0 {
		return nil, fmt.Errorf("%w: resolution %d, side length %d", ErrInvalidResolution, resolution, sideLength)
	}

	stride := sideLength
	steps := (stride - 1) / resolution
	indices := make([]uint32, 0, 6*steps*steps)

	for r := uint32(0); r < steps; r++ {
		for c := uint32(0); c < steps; c++ {
			near := r*resolution + c*resolution*stride
			down := r*resolution + resolution + c*resolution*stride
			right := r*resolution + (c*resolution+resolution)*stride
			far := r*resolution + resolution + (c*resolution+resolution)*stride

			indices = append(indices,
				near, down, right,
				right, down, far,
			)
		}
	}
	return indices, nil
}

// Topology is an index buffer shared by every patch at one LOD level.
// It is reference counted: the owning cache holds one reference and every
// patch using it holds another. The index data is dropped when the last
// reference is released.
type Topology struct {
	level   LODLevel
	indices []uint32
	refs    int
}

// Level returns the LOD level this topology represents.
func (t *Topology) Level() LODLevel {
	return t.level
}

// Indices returns the shared triangle list. Callers must not modify it.
func (t *Topology) Indices() []uint32 {
	return t.indices
}

// Refs returns the number of live references.
func (t *Topology) Refs() int {
	return t.refs
}

// Released reports whether every reference has been dropped.
func (t *Topology) Released() bool {
	return t.refs == 0 && t.indices == nil
}

func (t *Topology) acquire() *Topology {
	if t.Released() {
		panic(fmt.Sprintf("terrain: acquire of released %s topology", t.level))
	}
	t.refs++
	return t
}

func (t *Topology) release() {
	if t.refs <= 0 {
		panic(fmt.Sprintf("terrain: release of unreferenced %s topology", t.level))
	}
	t.refs--
	if t.refs == 0 {
		t.indices = nil
	}
}

// TopologyCache builds and retains one Topology per LOD level.
type TopologyCache struct {
	sideLength uint32
	topologies [lodLevelCount]*Topology
}

// NewTopologyCache builds the topologies of every LOD level for a patch with
// sideLength vertices per side.
func NewTopologyCache(sideLength uint32) (*TopologyCache, error) {
	c := &TopologyCache{sideLength: sideLength}
	for _, level := range LODLevels {
		indices, err := BuildIndices(level.Resolution(), sideLength)
		if err != nil {
			return nil, fmt.Errorf("building %s topology: %w", level, err)
		}
		t := &Topology{level: level, indices: indices}
		c.topologies[level] = t.acquire()
	}
	return c, nil
}

// Get returns the cached topology for level. Invalid levels map to Standard.
func (c *TopologyCache) Get(level LODLevel) *Topology {
	if !level.Valid() {
		level = LODStandard
	}
	return c.topologies[level]
}

// SideLength returns the vertex count per side the topologies were built for.
func (c *TopologyCache) SideLength() uint32 {
	return c.sideLength
}

// Close drops the cache's own references. Topologies still used by patches
// stay alive until those patches release them.
func (c *TopologyCache) Close() {
	for i, t := range c.topologies {
		if t != nil && t.refs > 0 {
			t.release()
		}
		c.topologies[i] = nil
	}
}
