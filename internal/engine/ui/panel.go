package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/midgard-terrain/internal/config"
	"github.com/Faultbox/midgard-terrain/internal/engine/debug"
	"github.com/Faultbox/midgard-terrain/internal/engine/lighting"
	"github.com/Faultbox/midgard-terrain/internal/engine/picking"
	"github.com/Faultbox/midgard-terrain/internal/engine/scene"
	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
)

// TerrainSettings are the values edited by the terrain panel.
type TerrainSettings struct {
	LOD config.LODConfig

	Wireframe  bool
	LODTint    bool
	ShowBounds bool
	Shadows    bool
	Fog        bool

	SunAzimuth   float32
	SunElevation float32
}

// TerrainPanel shows window statistics and LOD controls.
type TerrainPanel struct {
	Settings TerrainSettings

	// Inputs refreshed by the caller every frame
	Viewpoint math.Vec3
	Center    terrain.GridCoord
	Radius    int32
	PatchSize float32
	Update    terrain.UpdateStats
	Draw      scene.DrawStats
	Sync      scene.SyncStats
	Picked    *picking.Hit

	Timer FrameTimer

	screenshot bool
}

// NewTerrainPanel creates a panel seeded from cfg.
func NewTerrainPanel(cfg *config.Config) *TerrainPanel {
	sun := lighting.DefaultSun()
	return &TerrainPanel{
		Settings: TerrainSettings{
			LOD:          cfg.Terrain.LOD,
			Wireframe:    cfg.Graphics.Wireframe,
			Shadows:      true,
			Fog:          true,
			SunAzimuth:   sun.Azimuth,
			SunElevation: sun.Elevation,
		},
	}
}

// ScreenshotRequested reports and clears a pending screenshot request.
func (p *TerrainPanel) ScreenshotRequested() bool {
	requested := p.screenshot
	p.screenshot = false
	return requested
}

// Render draws the panel at the given position and width. It returns true
// if the LOD settings changed.
func (p *TerrainPanel) Render(x, y, width, height float32) bool {
	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(width, height))

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	lodChanged := false
	if imgui.BeginV("Terrain", nil, flags) {
		p.renderTiming()
		lodChanged = p.renderLOD()
		p.renderDisplay()
		p.renderWindow()
		p.renderPicked()

		imgui.Separator()
		if imgui.Button("Screenshot (F12)") {
			p.screenshot = true
		}
	}
	imgui.End()
	return lodChanged
}

func (p *TerrainPanel) renderTiming() {
	fps := p.Timer.FPS()
	fpsColor := imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
	if fps < 30 {
		fpsColor = imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
	} else if fps < 60 {
		fpsColor = imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
	}

	imgui.TextColored(fpsColor, fmt.Sprintf("FPS: %.1f", fps))
	imgui.SameLine()
	imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", p.Timer.FrameTime()))
	imgui.Text(fmt.Sprintf("Heap: %s", formatBytes(int64(p.Timer.HeapAlloc()))))
}

func (p *TerrainPanel) renderLOD() bool {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Level of detail", imgui.TreeNodeFlagsDefaultOpen) {
		return false
	}

	lod := &p.Settings.LOD
	changed := imgui.Checkbox("Distance LOD", &lod.Enabled)

	maxDistance := p.PatchSize * float32(2*p.Radius+1)
	if maxDistance <= 0 {
		maxDistance = 1000
	}

	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##CoarseFrom", &lod.CoarseFrom, 0, maxDistance, "coarse from %.0f", imgui.SliderFlagsNone) {
		changed = true
	}
	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##VeryCoarseFrom", &lod.VeryCoarseFrom, 0, maxDistance, "very coarse from %.0f", imgui.SliderFlagsNone) {
		changed = true
	}

	for _, level := range terrain.LODLevels {
		c := debug.LODColor(level)
		imgui.TextColored(imgui.NewVec4(c[0], c[1], c[2], 1), fmt.Sprintf("%-11s %4d patches", level, p.Update.LODCounts[level]))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%d drawn)", p.Draw.PerLevel[level]))
	}
	imgui.Text(fmt.Sprintf("Triangles: %d", p.Draw.Triangles))
	return changed
}

func (p *TerrainPanel) renderDisplay() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Display", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	imgui.Checkbox("Wireframe", &p.Settings.Wireframe)
	imgui.Checkbox("Tint by level", &p.Settings.LODTint)
	imgui.Checkbox("Patch bounds", &p.Settings.ShowBounds)
	imgui.Checkbox("Shadows", &p.Settings.Shadows)
	imgui.Checkbox("Fog", &p.Settings.Fog)

	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##SunAzimuth", &p.Settings.SunAzimuth, 0, 360, "sun azimuth %.0f", imgui.SliderFlagsNone)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##SunElevation", &p.Settings.SunElevation, 5, 90, "sun elevation %.0f", imgui.SliderFlagsNone)
}

func (p *TerrainPanel) renderWindow() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Window", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	imgui.Text(fmt.Sprintf("Viewpoint: %.1f, %.1f, %.1f", p.Viewpoint.X, p.Viewpoint.Y, p.Viewpoint.Z))
	imgui.Text(fmt.Sprintf("Center: %s  radius %d", p.Center, p.Radius))
	imgui.Text(fmt.Sprintf("Last update: %d steps, +%d / -%d", p.Update.Steps, p.Update.Added, p.Update.Evicted))
	imgui.Text(fmt.Sprintf("LOD changes: %d", p.Update.LODChanges))
	imgui.Text(fmt.Sprintf("GPU: %d patches, %d uploaded, %d rebound, %d deleted",
		p.Draw.Patches, p.Sync.Uploaded, p.Sync.Rebound, p.Sync.Deleted))
}

func (p *TerrainPanel) renderPicked() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Picked patch", imgui.TreeNodeFlagsNone) {
		return
	}
	if p.Picked == nil {
		imgui.TextDisabled("Right-click the view to pick a patch")
		return
	}
	hit := p.Picked
	b := hit.Patch.Bounds()
	imgui.Text(fmt.Sprintf("Patch: %s", hit.Patch.GridIndex()))
	imgui.Text(fmt.Sprintf("Level: %s", hit.Patch.LOD()))
	imgui.Text(fmt.Sprintf("Indices: %d", len(hit.Patch.Indices())))
	imgui.Text(fmt.Sprintf("Height: %.1f .. %.1f", b.Min[1], b.Max[1]))
	imgui.Text(fmt.Sprintf("Hit: %.1f, %.1f, %.1f (%.1f away)", hit.Point.X, hit.Point.Y, hit.Point.Z, hit.Distance))
}
