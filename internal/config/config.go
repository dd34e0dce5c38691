// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Terrain     TerrainConfig     `yaml:"terrain"`
	HeightField HeightFieldConfig `yaml:"heightfield"`
	Camera      CameraConfig      `yaml:"camera"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // Vertical field of view in degrees
	FarPlane   float32 `yaml:"far_plane"`
	Wireframe  bool    `yaml:"wireframe"`
}

// TerrainConfig holds patch grid settings.
type TerrainConfig struct {
	PatchSize      float32   `yaml:"patch_size"`       // World units per patch side
	PatchesPerSide int       `yaml:"patches_per_side"` // Must be odd
	LOD            LODConfig `yaml:"lod"`
}

// LODConfig holds distance thresholds for the distance LOD policy.
type LODConfig struct {
	Enabled        bool    `yaml:"enabled"`
	CoarseFrom     float32 `yaml:"coarse_from"`
	VeryCoarseFrom float32 `yaml:"very_coarse_from"`
}

// HeightFieldConfig holds procedural height field parameters.
type HeightFieldConfig struct {
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Frequency   float32 `yaml:"frequency"`
	Amplitude   float32 `yaml:"amplitude"`
	Lacunarity  float32 `yaml:"lacunarity"`
	Persistence float32 `yaml:"persistence"`
}

// CameraConfig holds fly camera settings.
type CameraConfig struct {
	Start            [3]float32 `yaml:"start"`
	MoveSpeed        float32    `yaml:"move_speed"` // World units per second
	LookSensitivity  float32    `yaml:"look_sensitivity"`
	FollowTerrain    bool       `yaml:"follow_terrain"`
	HeightAboveField float32    `yaml:"height_above_field"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        60,
			FarPlane:   2000,
		},
		Terrain: TerrainConfig{
			PatchSize:      64,
			PatchesPerSide: 9,
			LOD: LODConfig{
				Enabled:        true,
				CoarseFrom:     96,
				VeryCoarseFrom: 192,
			},
		},
		HeightField: HeightFieldConfig{
			Seed:        1,
			Octaves:     5,
			Frequency:   0.004,
			Amplitude:   40,
			Lacunarity:  2,
			Persistence: 0.5,
		},
		Camera: CameraConfig{
			Start:            [3]float32{0, 60, 0},
			MoveSpeed:        60,
			LookSensitivity:  0.003,
			FollowTerrain:    false,
			HeightAboveField: 12,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
