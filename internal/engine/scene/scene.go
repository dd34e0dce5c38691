// Package scene draws a streamed terrain window with sun lighting, a
// directional shadow map, distance fog and optional debug overlays.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-terrain/internal/engine/lighting"
	"github.com/Faultbox/midgard-terrain/internal/engine/shadow"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// Config contains scene configuration options.
type Config struct {
	Width            int32
	Height           int32
	FOV              float32 // Vertical field of view in degrees
	NearPlane        float32
	FarPlane         float32
	ShadowResolution int32
	Shadows          bool
	Offscreen        bool // Render into an owned framebuffer instead of the bound one
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		FOV:              60,
		NearPlane:        0.5,
		FarPlane:         4000,
		ShadowResolution: shadow.DefaultResolution,
		Shadows:          true,
	}
}

// Frame carries the per-frame parameters shared by the terrain passes.
type Frame struct {
	ViewProj      math.Mat4
	LightViewProj math.Mat4
	CameraPos     math.Vec3
	HeightScale   float32

	Sun       lighting.Sun
	ShadowMap *shadow.Map

	Fog      bool
	FogNear  float32
	FogFar   float32
	FogColor [3]float32
}

// Scene renders a terrain grid.
type Scene struct {
	config Config

	terrain     *TerrainRenderer
	lines       *LineRenderer
	shadowMap   *shadow.Map
	framebuffer *framebuffer.Framebuffer

	Sun         lighting.Sun
	HeightScale float32
	ClearColor  [3]float32

	Shadows bool

	Fog      bool
	FogNear  float32
	FogFar   float32
	FogColor [3]float32

	ShowBounds bool

	outline  []debug.LineVertex
	lastSync SyncStats
	log      *zap.Logger
}

// New creates a scene drawing with the topologies of source, normally the
// grid passed to Render. A GL context must be current.
func New(cfg Config, source TopologySource) (*Scene, error) {
	if cfg.FOV <= 0 {
		cfg.FOV = 60
	}
	if cfg.NearPlane <= 0 {
		cfg.NearPlane = 0.5
	}
	if cfg.FarPlane <= cfg.NearPlane {
		cfg.FarPlane = 4000
	}

	s := &Scene{
		config:      cfg,
		Sun:         lighting.DefaultSun(),
		HeightScale: 1,
		ClearColor:  [3]float32{0.55, 0.68, 0.82},
		Shadows:     cfg.Shadows,
		FogNear:     cfg.FarPlane * 0.5,
		FogFar:      cfg.FarPlane,
		FogColor:    [3]float32{0.55, 0.68, 0.82},
		log:         logger.Named("scene"),
	}

	var err error
	s.terrain, err = NewTerrainRenderer(source)
	if err != nil {
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.lines, err = NewLineRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating line renderer: %w", err)
	}

	if cfg.Shadows {
		s.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			// The scene still renders without shadows
			s.log.Warn("shadow map unavailable", zap.Error(err))
			s.Shadows = false
		}
	}

	if cfg.Offscreen {
		s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
		if err != nil {
			s.Destroy()
			return nil, fmt.Errorf("creating framebuffer: %w", err)
		}
	}
	return s, nil
}

// Terrain returns the terrain renderer for render-mode toggles and stats.
func (s *Scene) Terrain() *TerrainRenderer {
	return s.terrain
}

// LastSync returns the GPU sync statistics of the last Render.
func (s *Scene) LastSync() SyncStats {
	return s.lastSync
}

// Projection returns the perspective projection for the current size.
func (s *Scene) Projection() math.Mat4 {
	aspect := float32(s.config.Width) / float32(max(s.config.Height, 1))
	return math.Perspective(s.config.FOV*math.DegToRad, aspect, s.config.NearPlane, s.config.FarPlane)
}

// ViewProj combines the projection with view.
func (s *Scene) ViewProj(view math.Mat4) math.Mat4 {
	return s.Projection().Mul(view)
}

// Render syncs the GPU meshes with grid and draws it as seen from eye. It
// returns the color texture when the scene is offscreen, or 0 otherwise.
func (s *Scene) Render(grid *terrain.Grid, view math.Mat4, eye math.Vec3) uint32 {
	s.lastSync = s.terrain.Sync(grid.Drawables())

	f := &Frame{
		ViewProj:    s.ViewProj(view),
		CameraPos:   eye,
		HeightScale: s.HeightScale,
		Sun:         s.Sun,
		Fog:         s.Fog,
		FogNear:     s.FogNear,
		FogFar:      s.FogFar,
		FogColor:    s.FogColor,
	}

	if s.Shadows && s.shadowMap != nil {
		if bounds, ok := shadow.BoundsOf(grid.Geometries()); ok {
			f.LightViewProj = shadow.DirectionalLightMatrix(s.Sun.Direction(), bounds)
			f.ShadowMap = s.shadowMap
			s.renderShadowPass(f)
		}
	}

	if s.framebuffer != nil {
		restore := s.framebuffer.Bind()
		defer restore()
		s.framebuffer.Clear(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2])
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	s.terrain.Render(f)

	if s.ShowBounds {
		s.outline = debug.PatchOutlines(s.outline[:0], grid.Drawables())
		s.lines.Draw(f.ViewProj, s.outline)
	}

	if s.framebuffer != nil {
		return s.framebuffer.ColorTexture()
	}
	return 0
}

func (s *Scene) renderShadowPass(f *Frame) {
	s.shadowMap.Bind()
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	s.terrain.RenderDepth(f)
	s.shadowMap.Unbind()
}

// Resize updates the projection and the offscreen target.
func (s *Scene) Resize(width, height int32) {
	if width == s.config.Width && height == s.config.Height {
		return
	}
	s.config.Width = width
	s.config.Height = height
	if s.framebuffer != nil {
		s.framebuffer.Resize(width, height)
	}
}

// Size returns the render target dimensions.
func (s *Scene) Size() (width, height int32) {
	return s.config.Width, s.config.Height
}

// ReadPixels returns the last rendered image as bottom-up RGBA rows.
func (s *Scene) ReadPixels() []byte {
	if s.framebuffer != nil {
		return s.framebuffer.ReadPixels()
	}
	pixels := make([]byte, int(s.config.Width)*int(s.config.Height)*4)
	gl.ReadPixels(0, 0, s.config.Width, s.config.Height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	if s.terrain != nil {
		s.terrain.Destroy()
		s.terrain = nil
	}
	if s.lines != nil {
		s.lines.Destroy()
		s.lines = nil
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
		s.shadowMap = nil
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
		s.framebuffer = nil
	}
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
