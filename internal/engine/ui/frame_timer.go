package ui

import (
	"fmt"
	"runtime"
)

// FrameTimer averages frame rate over short windows and samples memory use.
type FrameTimer struct {
	fps       float64
	frameTime float64 // ms

	fpsAccum   float64 // seconds since last FPS update
	frameAccum int

	memStats      runtime.MemStats
	memUpdateTime float64
}

const (
	fpsWindow   = 0.5 // seconds
	memInterval = 2.0 // seconds
)

// Tick records one frame that took dt seconds.
func (t *FrameTimer) Tick(dt float64) {
	t.frameTime = dt * 1000
	t.frameAccum++
	t.fpsAccum += dt

	if t.fpsAccum >= fpsWindow {
		t.fps = float64(t.frameAccum) / t.fpsAccum
		t.frameAccum = 0
		t.fpsAccum = 0
	}

	t.memUpdateTime += dt
	if t.memUpdateTime >= memInterval {
		runtime.ReadMemStats(&t.memStats)
		t.memUpdateTime = 0
	}
}

// FPS returns the frame rate of the last completed window.
func (t *FrameTimer) FPS() float64 {
	return t.fps
}

// FrameTime returns the duration of the last frame in milliseconds.
func (t *FrameTimer) FrameTime() float64 {
	return t.frameTime
}

// HeapAlloc returns the heap size at the last memory sample.
func (t *FrameTimer) HeapAlloc() uint64 {
	return t.memStats.HeapAlloc
}

// formatBytes formats byte count to human readable string.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
