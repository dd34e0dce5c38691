// Package viewer implements the fly-through terrain viewer frame loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/camera"
	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/input"
	"github.com/Faultbox/midgard-terrain/internal/engine/renderer"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene"
	"github.com/Faultbox/midgard-terrain/internal/engine/window"
	"github.com/Faultbox/midgard-terrain/internal/logger"
	"github.com/Faultbox/midgard-terrain/internal/world"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

const (
	title           = "Midgard Terrain"
	minMoveSpeed    = 5
	maxMoveSpeed    = 2000
	speedWheelScale = 1.2
)

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	world    *world.World
	camera   *camera.FlyCamera

	screenshots *debug.Screenshotter
	mouseLook   bool

	log *zap.Logger
}

// New creates the window, GL state, scene and terrain.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		screenshots: debug.NewScreenshotter("screenshots", "terrain"),
		log:         logger.Named("viewer"),
	}

	a.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("patches_per_side", cfg.Terrain.PatchesPerSide),
		zap.Float32("patch_size", cfg.Terrain.PatchSize),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Drawable size may differ from the requested size on HiDPI displays
	width, height := a.window.GetSize()

	// Renderer must come after the window, since the GL context must exist
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [3]float32{0.55, 0.68, 0.82},
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	start := math.Vec3{X: cfg.Camera.Start[0], Y: cfg.Camera.Start[1], Z: cfg.Camera.Start[2]}
	a.world, err = world.New(cfg, start)
	if err != nil {
		a.Close()
		return nil, err
	}

	sceneCfg := scene.DefaultConfig()
	sceneCfg.Width, sceneCfg.Height = int32(width), int32(height)
	sceneCfg.FOV = cfg.Graphics.FOV
	sceneCfg.FarPlane = cfg.Graphics.FarPlane
	a.scene, err = scene.New(sceneCfg, a.world.Grid)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	a.scene.HeightScale = cfg.HeightField.Amplitude
	a.scene.Fog = true
	a.scene.Terrain().Wireframe = cfg.Graphics.Wireframe

	a.camera = camera.NewFlyCamera(start, cfg.Camera.MoveSpeed, cfg.Camera.LookSensitivity)
	a.input = input.New()

	a.log.Info("viewer initialized", zap.Int("patches", a.world.Grid.Len()))
	return a, nil
}

// Run starts the frame loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Move the viewpoint and stream terrain
		a.updateCamera(dt)
		a.world.Update(a.camera.Position)

		// 3. Render
		a.renderer.Begin()
		a.scene.Render(a.world.Grid, a.camera.ViewMatrix(), a.camera.Position)

		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}

		// 4. Present
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			a.window.SetTitle(Title(fps, a.camera.Position, a.world.Grid.Stats()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := a.window.GetSize()
			a.renderer.Resize(width, height)
			a.scene.Resize(int32(width), int32(height))

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				a.setMouseLook(true)
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_RIGHT {
				a.setMouseLook(false)
			}

		case input.EventKeyDown:
			a.handleKey(event.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	terrainRenderer := a.scene.Terrain()

	switch key {
	case sdl.SCANCODE_ESCAPE:
		if a.mouseLook {
			a.setMouseLook(false)
			return
		}
		a.running = false
	case sdl.SCANCODE_F1:
		terrainRenderer.Wireframe = !terrainRenderer.Wireframe
	case sdl.SCANCODE_F2:
		terrainRenderer.LODTint = !terrainRenderer.LODTint
	case sdl.SCANCODE_F3:
		a.scene.ShowBounds = !a.scene.ShowBounds
	case sdl.SCANCODE_F4:
		lod := a.world.LOD()
		lod.Enabled = !lod.Enabled
		a.world.SetLOD(lod)
		a.log.Info("distance lod toggled", zap.Bool("enabled", lod.Enabled))
	case sdl.SCANCODE_F5:
		a.scene.Shadows = !a.scene.Shadows
	case sdl.SCANCODE_F6:
		a.scene.Fog = !a.scene.Fog
	case sdl.SCANCODE_F7:
		a.cfg.Camera.FollowTerrain = !a.cfg.Camera.FollowTerrain
	}
}

func (a *App) setMouseLook(enabled bool) {
	if a.mouseLook == enabled {
		return
	}
	a.mouseLook = enabled
	a.window.SetMouseCaptured(enabled)
}

func (a *App) updateCamera(dt float32) {
	if a.mouseLook {
		a.camera.Look(a.input.MouseDelta())
	}
	if wheel := a.input.Wheel(); wheel != 0 {
		a.camera.MoveSpeed = ScaleSpeed(a.camera.MoveSpeed, wheel)
	}

	forward := a.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W)
	right := a.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D)
	up := a.input.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_E)

	boost := float32(1)
	if a.input.IsKeyDown(sdl.SCANCODE_LSHIFT) {
		boost = 4
	}
	a.camera.Move(forward, right, up, dt*boost)

	if a.cfg.Camera.FollowTerrain {
		a.camera.KeepAbove(a.world.Field, a.cfg.Camera.HeightAboveField)
	}
}

func (a *App) screenshot() {
	width, height := a.renderer.Size()
	path, err := a.screenshots.SavePixels(a.scene.ReadPixels(), width, height)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases every resource in reverse creation order.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.world != nil {
		a.world.Close()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
