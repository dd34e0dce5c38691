package scene

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-terrain/internal/engine/shader"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/logger"
)

const vertexSize = int32(unsafe.Sizeof(terrain.Vertex{}))

// patchMesh is the GPU copy of one live patch.
type patchMesh struct {
	vao    uint32
	vbo    uint32
	source terrain.Drawable
	level  terrain.LODLevel
	frame  uint64
}

// SyncStats counts the GPU work done by one Sync.
type SyncStats struct {
	Uploaded int
	Rebound  int
	Deleted  int
}

// DrawStats counts the work submitted by the last color pass.
type DrawStats struct {
	Patches   int
	Triangles int
	PerLevel  [3]int
}

// TerrainRenderer mirrors the terrain window on the GPU. Each LOD topology is
// uploaded once as a shared element buffer; each patch owns only its vertex
// buffer and a vertex array bound to the element buffer of its current level.
type TerrainRenderer struct {
	program *shader.Program
	depth   *shader.Program

	ebos       [3]uint32
	indexCount [3]int32

	meshes map[terrain.GridCoord]*patchMesh
	frame  uint64

	Wireframe bool
	LODTint   bool

	draws DrawStats
	log   *zap.Logger
}

// TopologySource provides the shared topology of each LOD level.
// *terrain.Grid implements it.
type TopologySource interface {
	Topology(level terrain.LODLevel) *terrain.Topology
}

// NewTerrainRenderer compiles the terrain programs and uploads the topologies
// owned by source, one element buffer per level.
func NewTerrainRenderer(source TopologySource) (*TerrainRenderer, error) {
	tr := &TerrainRenderer{
		meshes: make(map[terrain.GridCoord]*patchMesh),
		log:    logger.Named("scene"),
	}

	var err error
	tr.program, err = shader.NewProgram("terrain", shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, err
	}
	tr.depth, err = shader.NewProgram("terrain-depth", shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		tr.Destroy()
		return nil, err
	}

	for _, level := range terrain.LODLevels {
		indices := source.Topology(level).Indices()
		if len(indices) == 0 {
			tr.Destroy()
			return nil, fmt.Errorf("empty %s topology", level)
		}
		gl.GenBuffers(1, &tr.ebos[level])
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebos[level])
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
		tr.indexCount[level] = int32(len(indices))
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	tr.log.Debug("terrain topologies uploaded",
		zap.Int32("standard", tr.indexCount[terrain.LODStandard]),
		zap.Int32("coarse", tr.indexCount[terrain.LODCoarse]),
		zap.Int32("very_coarse", tr.indexCount[terrain.LODVeryCoarse]),
	)
	return tr, nil
}

// Sync reconciles the GPU meshes with the live patches: new patches are
// uploaded, patches whose level changed are rebound to another element
// buffer, and meshes of evicted patches are deleted.
func (tr *TerrainRenderer) Sync(drawables iter.Seq[terrain.Drawable]) SyncStats {
	var stats SyncStats
	tr.frame++

	for d := range drawables {
		coord := d.GridIndex()
		m, ok := tr.meshes[coord]
		if ok && m.source != d {
			// A different grid produced a patch at the same coordinate
			tr.deleteMesh(m)
			ok = false
		}
		switch {
		case !ok:
			m = tr.upload(d)
			tr.meshes[coord] = m
			stats.Uploaded++
		case m.level != d.LOD():
			tr.bindLevel(m, d.LOD())
			stats.Rebound++
		}
		m.frame = tr.frame
	}

	for coord, m := range tr.meshes {
		if m.frame != tr.frame {
			tr.deleteMesh(m)
			delete(tr.meshes, coord)
			stats.Deleted++
		}
	}

	if stats.Uploaded > 0 || stats.Deleted > 0 {
		tr.log.Debug("terrain meshes synced",
			zap.Int("uploaded", stats.Uploaded),
			zap.Int("rebound", stats.Rebound),
			zap.Int("deleted", stats.Deleted),
			zap.Int("live", len(tr.meshes)),
		)
	}
	return stats
}

func (tr *TerrainRenderer) upload(d terrain.Drawable) *patchMesh {
	vertices := d.Vertices()
	m := &patchMesh{source: d}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexSize), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexSize, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexSize, 3*4)
	gl.EnableVertexAttribArray(1)

	m.level = d.LOD()
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebos[tr.level(m.level)])

	gl.BindVertexArray(0)
	return m
}

// bindLevel points the mesh's vertex array at another shared element buffer.
func (tr *TerrainRenderer) bindLevel(m *patchMesh, level terrain.LODLevel) {
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebos[tr.level(level)])
	gl.BindVertexArray(0)
	m.level = level
}

func (tr *TerrainRenderer) level(l terrain.LODLevel) terrain.LODLevel {
	if !l.Valid() {
		return terrain.LODStandard
	}
	return l
}

func (tr *TerrainRenderer) deleteMesh(m *patchMesh) {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	m.vao, m.vbo = 0, 0
}

// Render draws every synced patch with the terrain program.
func (tr *TerrainRenderer) Render(f *Frame) {
	tr.draws = DrawStats{}
	if len(tr.meshes) == 0 {
		return
	}

	p := tr.program
	p.Use()
	p.SetMat4("uViewProj", f.ViewProj)
	p.SetVec3("uCameraPos", f.CameraPos)
	p.SetFloat("uHeightScale", f.HeightScale)

	p.SetVec3("uLightDir", f.Sun.Direction())
	p.SetVec3("uAmbient", vec3(f.Sun.Ambient))
	p.SetVec3("uDiffuse", vec3(f.Sun.Diffuse))

	p.SetBool("uShadowsEnabled", f.ShadowMap != nil)
	p.SetMat4("uLightViewProj", f.LightViewProj)
	if f.ShadowMap != nil {
		f.ShadowMap.BindTexture(gl.TEXTURE0)
		p.SetInt("uShadowMap", 0)
	}

	p.SetBool("uFogUse", f.Fog)
	p.SetFloat("uFogNear", f.FogNear)
	p.SetFloat("uFogFar", f.FogFar)
	p.SetVec3("uFogColor", vec3(f.FogColor))

	p.SetBool("uLODTint", tr.LODTint)

	if tr.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	for _, m := range tr.meshes {
		level := tr.level(m.level)
		if tr.LODTint {
			p.SetVec3("uLODColor", vec3(debug.LODColor(level)))
		}
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, tr.indexCount[level], gl.UNSIGNED_INT, nil)

		tr.draws.Patches++
		tr.draws.PerLevel[level]++
		tr.draws.Triangles += int(tr.indexCount[level]) / 3
	}
	gl.BindVertexArray(0)
}

// RenderDepth draws every synced patch into the bound depth target.
func (tr *TerrainRenderer) RenderDepth(f *Frame) {
	tr.depth.Use()
	tr.depth.SetMat4("uLightViewProj", f.LightViewProj)
	for _, m := range tr.meshes {
		gl.BindVertexArray(m.vao)
		gl.DrawElements(gl.TRIANGLES, tr.indexCount[tr.level(m.level)], gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// DrawStats returns the statistics of the last Render.
func (tr *TerrainRenderer) DrawStats() DrawStats {
	return tr.draws
}

// Meshes returns the number of patches resident on the GPU.
func (tr *TerrainRenderer) Meshes() int {
	return len(tr.meshes)
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	for coord, m := range tr.meshes {
		tr.deleteMesh(m)
		delete(tr.meshes, coord)
	}
	for i := range tr.ebos {
		if tr.ebos[i] != 0 {
			gl.DeleteBuffers(1, &tr.ebos[i])
			tr.ebos[i] = 0
		}
	}
	if tr.program != nil {
		tr.program.Delete()
	}
	if tr.depth != nil {
		tr.depth.Delete()
	}
}
