// terraintuner is an ImGui tool for tuning LOD thresholds against a live
// terrain window seen from above.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/picking"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene"
	"github.com/Faultbox/midgard-terrain/internal/engine/ui"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/world"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

const (
	windowTitle = "Midgard Terrain Tuner"
	panelWidth  = 340
)

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Terrain Tuner ===")

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to create tuner", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
	logger.Info("tuner closed normally")
}

// App holds the tuner state.
type App struct {
	cfg     *config.Config
	backend *ui.Backend

	scene  *scene.Scene
	world  *world.World
	camera *camera.OrbitCamera
	panel  *ui.TerrainPanel

	screenshots  *debug.Screenshotter
	lastMousePos imgui.Vec2
	lastFrame    time.Time
	picked       picking.Hit
	hasPick      bool

	log *zap.Logger
}

// NewApp creates the window, the offscreen scene and the terrain.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		panel:       ui.NewTerrainPanel(cfg),
		screenshots: debug.NewScreenshotter("screenshots", "tuner"),
		log:         logger.Named("tuner"),
	}

	var err error
	a.backend, err = ui.NewBackend(windowTitle, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	if err != nil {
		return nil, err
	}

	start := math.Vec3{X: cfg.Camera.Start[0], Z: cfg.Camera.Start[2]}
	a.world, err = world.New(cfg, start)
	if err != nil {
		a.Close()
		return nil, err
	}

	sceneCfg := scene.DefaultConfig()
	sceneCfg.Width = int32(cfg.Graphics.Width - panelWidth)
	sceneCfg.Height = int32(cfg.Graphics.Height)
	sceneCfg.FOV = cfg.Graphics.FOV
	sceneCfg.FarPlane = cfg.Graphics.FarPlane * 4
	sceneCfg.Offscreen = true
	a.scene, err = scene.New(sceneCfg, a.world.Grid)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	a.scene.HeightScale = cfg.HeightField.Amplitude

	extent := cfg.Terrain.PatchSize * float32(cfg.Terrain.PatchesPerSide)
	a.camera = camera.NewOrbitCamera(start, extent)
	a.camera.MaxDistance = extent * 4
	a.lastFrame = time.Now()
	return a, nil
}

// Run enters the ImGui loop.
func (a *App) Run() {
	a.backend.Run(a.frame)
}

func (a *App) frame() {
	now := time.Now()
	a.panel.Timer.Tick(now.Sub(a.lastFrame).Seconds())
	a.lastFrame = now

	x, y, width, height := a.backend.GetViewport()

	a.applySettings()
	stats := a.world.Update(a.camera.Target)
	a.refreshPick()

	if a.panel.Render(x, y, panelWidth, height) {
		a.world.SetLOD(a.panel.Settings.LOD)
	}
	a.renderView(x+panelWidth, y, width-panelWidth, height)

	grid := a.world.Grid
	a.panel.Viewpoint = a.camera.Target
	a.panel.Center = grid.Center()
	a.panel.Radius = grid.WindowRadius()
	a.panel.PatchSize = grid.PatchSize()
	a.panel.Update = stats
	a.panel.Draw = a.scene.Terrain().DrawStats()
	a.panel.Sync = a.scene.LastSync()
	if a.hasPick {
		a.panel.Picked = &a.picked
	}

	if a.panel.ScreenshotRequested() || ui.IsKeyPressed(imgui.KeyF12) {
		a.screenshot()
	}
}

func (a *App) applySettings() {
	s := a.panel.Settings
	terrainRenderer := a.scene.Terrain()
	terrainRenderer.Wireframe = s.Wireframe
	terrainRenderer.LODTint = s.LODTint
	a.scene.ShowBounds = s.ShowBounds
	a.scene.Shadows = s.Shadows
	a.scene.Fog = s.Fog

	sun := a.scene.Sun
	sun.Azimuth, sun.Elevation = s.SunAzimuth, s.SunElevation
	a.scene.Sun = sun
}

func (a *App) renderView(x, y, width, height float32) {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse |
		imgui.WindowFlagsNoScrollbar

	if imgui.BeginV("View", nil, flags) {
		avail := imgui.ContentRegionAvail()
		viewW, viewH := int32(avail.X), int32(avail.Y)
		if viewW > 0 && viewH > 0 {
			a.scene.Resize(viewW, viewH)
			texture := a.scene.Render(a.world.Grid, a.camera.ViewMatrix(), a.camera.Position())

			origin := imgui.CursorScreenPos()
			texRef := imgui.NewTextureRefTextureID(imgui.TextureID(texture))
			imgui.ImageWithBgV(
				*texRef,
				imgui.NewVec2(avail.X, avail.Y),
				imgui.NewVec2(0, 1), // UV flipped
				imgui.NewVec2(1, 0),
				imgui.NewVec4(0, 0, 0, 1),
				imgui.NewVec4(1, 1, 1, 1),
			)

			if imgui.IsItemHovered() {
				a.handleViewInput(origin, avail)
			}
		}
	}
	imgui.End()
}

func (a *App) handleViewInput(origin, size imgui.Vec2) {
	mousePos := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		a.camera.HandleDrag(mousePos.X-a.lastMousePos.X, mousePos.Y-a.lastMousePos.Y)
	}
	a.lastMousePos = mousePos

	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		a.camera.HandleZoom(wheel)
	}

	var forward, right float32
	if ui.IsKeyDown(imgui.KeyW) {
		forward++
	}
	if ui.IsKeyDown(imgui.KeyS) {
		forward--
	}
	if ui.IsKeyDown(imgui.KeyD) {
		right++
	}
	if ui.IsKeyDown(imgui.KeyA) {
		right--
	}
	if forward != 0 || right != 0 {
		a.camera.Pan(forward, right)
	}

	if imgui.IsMouseClickedBool(imgui.MouseButtonRight) {
		a.pick(mousePos.X-origin.X, mousePos.Y-origin.Y, size.X, size.Y)
	}
}

func (a *App) pick(sx, sy, width, height float32) {
	viewProj := a.scene.ViewProj(a.camera.ViewMatrix())
	ray, ok := picking.ScreenToRay(sx, sy, width, height, viewProj)
	if !ok {
		return
	}
	hit, ok := picking.PickPatch(a.world.Grid.Drawables(), ray)
	a.picked, a.hasPick = hit, ok
	if !ok {
		a.panel.Picked = nil
		return
	}
	a.log.Debug("patch picked",
		zap.Stringer("patch", hit.Patch.GridIndex()),
		zap.Stringer("lod", hit.Patch.LOD()),
		zap.Float32("distance", hit.Distance),
	)
}

// refreshPick re-resolves the picked patch after an update, dropping it once
// the patch has left the window.
func (a *App) refreshPick() {
	if !a.hasPick {
		return
	}
	if p, ok := a.world.Grid.Patch(a.picked.Patch.GridIndex()); ok {
		a.picked.Patch = p
		return
	}
	a.picked, a.hasPick = picking.Hit{}, false
	a.panel.Picked = nil
}

func (a *App) screenshot() {
	width, height := a.scene.Size()
	path, err := a.screenshots.SavePixels(a.scene.ReadPixels(), int(width), int(height))
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the terrain and GPU resources.
func (a *App) Close() {
	if a.world != nil {
		a.world.Close()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
}
