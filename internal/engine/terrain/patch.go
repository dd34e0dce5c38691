package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Patch is one square tile of sampled terrain. Its geometry is computed once
// at creation; only its topology reference changes afterwards.
type Patch struct {
	coord    GridCoord
	size     float32
	vertices []Vertex
	bounds   Bounds
	topology *Topology
}

// NewPatch samples field over the tile at coord and takes a reference to
// topology. Vertex (r, c) is stored at r*VerticesPerSide+c and lies at world
// (coord.X*size + r*h, coord.Y*size + c*h) with h the sample spacing.
func NewPatch(field HeightField, coord GridCoord, size float32, topology *Topology) *Patch {
	p := &Patch{
		coord:    coord,
		size:     size,
		vertices: make([]Vertex, verticesPerPatch),
		topology: topology.acquire(),
	}
	p.sample(field)
	return p
}

func (p *Patch) sample(field HeightField) {
	h := p.size / float32(VerticesPerSide-1)
	ox := float32(p.coord.X) * p.size
	oz := float32(p.coord.Y) * p.size

	p.bounds = Bounds{
		Min: [3]float32{ox, math32.Inf(1), oz},
		Max: [3]float32{ox + p.size, math32.Inf(-1), oz + p.size},
	}

	for r := 0; r < VerticesPerSide; r++ {
		for c := 0; c < VerticesPerSide; c++ {
			x := ox + float32(r)*h
			z := oz + float32(c)*h
			y := field.Sample(x, z)
			p.vertices[r*VerticesPerSide+c].Position = [3]float32{x, y, z}
			p.bounds.Min[1] = math32.Min(p.bounds.Min[1], y)
			p.bounds.Max[1] = math32.Max(p.bounds.Max[1], y)
		}
	}

	// Central differences; neighbours past the patch edge come from the field
	// so normals match across patch seams.
	for r := 0; r < VerticesPerSide; r++ {
		for c := 0; c < VerticesPerSide; c++ {
			i := r*VerticesPerSide + c
			pos := p.vertices[i].Position
			x, z := pos[0], pos[2]

			var xp, xm, zp, zm float32
			if r == VerticesPerSide-1 {
				xp = field.Sample(x+h, z)
			} else {
				xp = p.vertices[i+VerticesPerSide].Position[1]
			}
			if r == 0 {
				xm = field.Sample(x-h, z)
			} else {
				xm = p.vertices[i-VerticesPerSide].Position[1]
			}
			if c == VerticesPerSide-1 {
				zp = field.Sample(x, z+h)
			} else {
				zp = p.vertices[i+1].Position[1]
			}
			if c == 0 {
				zm = field.Sample(x, z-h)
			} else {
				zm = p.vertices[i-1].Position[1]
			}

			n := math.Vec3{X: -(xp - xm), Y: 2 * h, Z: -(zp - zm)}.Normalize()
			p.vertices[i].Normal = n.Array()
		}
	}
}

// GridIndex returns the patch's grid coordinate.
func (p *Patch) GridIndex() GridCoord {
	return p.coord
}

// WorldCenter returns the tile centroid at ground height (y = 0).
func (p *Patch) WorldCenter() math.Vec3 {
	return math.Vec3{
		X: (float32(p.coord.X) + 0.5) * p.size,
		Y: 0,
		Z: (float32(p.coord.Y) + 0.5) * p.size,
	}
}

// Size returns the world-space side length of the tile.
func (p *Patch) Size() float32 {
	return p.size
}

// Vertices returns the sampled geometry. Callers must not modify it.
func (p *Patch) Vertices() []Vertex {
	return p.vertices
}

// Topology returns the shared topology currently assigned to the patch.
func (p *Patch) Topology() *Topology {
	return p.topology
}

// Indices returns the triangle list of the current topology.
func (p *Patch) Indices() []uint32 {
	return p.topology.Indices()
}

// LOD returns the level of the current topology.
func (p *Patch) LOD() LODLevel {
	return p.topology.Level()
}

// Bounds returns the axis-aligned bounds of the sampled geometry.
func (p *Patch) Bounds() Bounds {
	return p.bounds
}

// setTopology swaps the patch to t, moving its reference. It reports whether
// the assignment changed.
func (p *Patch) setTopology(t *Topology) bool {
	if p.topology == t {
		return false
	}
	old := p.topology
	p.topology = t.acquire()
	old.release()
	return true
}

// release drops the patch's topology reference. The patch must not be used
// afterwards.
func (p *Patch) release() {
	if p.topology != nil {
		p.topology.release()
		p.topology = nil
	}
}
