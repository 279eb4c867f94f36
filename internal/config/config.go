// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig   `yaml:"graphics"`
	Model       ModelConfig      `yaml:"model"`
	Camera      CameraConfig     `yaml:"camera"`
	Material    MaterialConfig   `yaml:"material"`
	Lighting    LightingConfig   `yaml:"lighting"`
	Wireframe   WireframeConfig  `yaml:"wireframe"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`

	path string // File the config was read from, if any
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Title       string     `yaml:"title"`
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Fullscreen  bool       `yaml:"fullscreen"`
	VSync       bool       `yaml:"vsync"`
	ClearColor  [4]float32 `yaml:"clear_color"`
	GUI         bool       `yaml:"gui"`         // Side panel via imgui; false opens a bare SDL window
	PanelWidth  int        `yaml:"panel_width"` // Configuration panel width in pixels
	MSAASamples int        `yaml:"msaa_samples"`
}

// ModelConfig selects the mesh to open.
type ModelConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"` // Reload when the file changes on disk
}

// CameraConfig holds the initial camera setup.
type CameraConfig struct {
	FOV         float32    `yaml:"fov"` // Vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	SceneRadius float32    `yaml:"scene_radius"`
	Direction   [3]float32 `yaml:"direction"` // From target toward the eye
	FitToModel  bool       `yaml:"fit_to_model"`
}

// MaterialConfig holds the mesh surface parameters.
type MaterialConfig struct {
	Albedo    [3]float32 `yaml:"albedo"`
	Specular  float32    `yaml:"specular"`
	Shininess float32    `yaml:"shininess"`
}

// LightingConfig holds the ambient term and the directional sun.
type LightingConfig struct {
	Ambient       [3]float32 `yaml:"ambient"`
	SunColor      [3]float32 `yaml:"sun_color"`
	SunAzimuth    float32    `yaml:"sun_azimuth"`   // Degrees around +Y
	SunElevation  float32    `yaml:"sun_elevation"` // Degrees above the horizon
	HeadlightMode bool       `yaml:"headlight"`     // Light follows the camera
}

// WireframeConfig holds edge overlay settings.
type WireframeConfig struct {
	Enabled      bool       `yaml:"enabled"`
	EdgeMode     string     `yaml:"edge_mode"`  // canonical, unique
	Degenerate   string     `yaml:"degenerate"` // reject, skip, identity
	Color        [4]float32 `yaml:"color"`
	Radius       float32    `yaml:"radius"` // Tube radius relative to the model radius
	Segments     int        `yaml:"segments"`
	ShowVertices bool       `yaml:"show_vertices"`
	VertexScale  float32    `yaml:"vertex_scale"` // Sphere radius as a multiple of the tube radius
	ShowBounds   bool       `yaml:"show_bounds"`
	ShowSurface  bool       `yaml:"show_surface"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`

	// Rotation of LogFile
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string { return c.path }

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:       "3d model viewer",
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			ClearColor:  [4]float32{0.8, 0.8, 0.8, 1},
			GUI:         true,
			PanelWidth:  300,
			MSAASamples: 4,
		},
		Camera: CameraConfig{
			FOV:         60,
			Near:        0.1,
			Far:         1000,
			SceneRadius: 6,
			Direction:   [3]float32{0.6, 0.3, 1.0},
			FitToModel:  true,
		},
		Material: MaterialConfig{
			Albedo:    [3]float32{1, 0, 0},
			Specular:  0.3,
			Shininess: 32,
		},
		Lighting: LightingConfig{
			Ambient:      [3]float32{0.2, 0.2, 0.2},
			SunColor:     [3]float32{1, 1, 1},
			SunAzimuth:   45,
			SunElevation: 45,
		},
		Wireframe: WireframeConfig{
			Enabled:      true,
			EdgeMode:     "canonical",
			Degenerate:   "reject",
			Color:        [4]float32{0.05, 0.05, 0.05, 1},
			Radius:       0.004,
			Segments:     8,
			ShowVertices: false,
			VertexScale:  2,
			ShowBounds:   false,
			ShowSurface:  true,
		},
		Screenshots: ScreenshotConfig{
			Dir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
