package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-terrain/internal/config"
)

func TestFrameTimerAveragesOverWindow(t *testing.T) {
	var timer FrameTimer

	for range 3 {
		timer.Tick(0.125)
	}
	assert.Zero(t, timer.FPS(), "no completed window yet")

	timer.Tick(0.125)
	assert.InDelta(t, 8.0, timer.FPS(), 1e-9)
	assert.InDelta(t, 125.0, timer.FrameTime(), 1e-9)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}

func TestTerrainPanelDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Graphics.Wireframe = true

	p := NewTerrainPanel(cfg)
	assert.Equal(t, cfg.Terrain.LOD, p.Settings.LOD)
	assert.True(t, p.Settings.Wireframe)
	assert.True(t, p.Settings.Shadows)
}

func TestScreenshotRequestedClears(t *testing.T) {
	p := &TerrainPanel{screenshot: true}
	assert.True(t, p.ScreenshotRequested())
	assert.False(t, p.ScreenshotRequested())
}
