package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagPatches    = flag.Int("patches", 0, "Patches per window side (odd)")
	flagPatchSize  = flag.Float64("patch-size", 0, "Patch size in world units")
	flagSeed       = flag.Int64("seed", 0, "Height field seed")
	flagNoLOD      = flag.Bool("no-lod", false, "Render every patch at full detail")
	flagWireframe  = flag.Bool("wireframe", false, "Render terrain as wireframe")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagWireframe {
		cfg.Graphics.Wireframe = true
	}
	if *flagPatches > 0 {
		cfg.Terrain.PatchesPerSide = *flagPatches
	}
	if *flagPatchSize > 0 {
		cfg.Terrain.PatchSize = float32(*flagPatchSize)
	}
	if *flagSeed != 0 {
		cfg.HeightField.Seed = *flagSeed
	}
	if *flagNoLOD {
		cfg.Terrain.LOD.Enabled = false
	}
}
