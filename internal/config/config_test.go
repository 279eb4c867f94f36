package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meshview/internal/wireframe"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.GUI {
		t.Error("expected gui to be enabled by default")
	}
	if cfg.Graphics.Title != "3d model viewer" {
		t.Errorf("expected title '3d model viewer', got %q", cfg.Graphics.Title)
	}
	if cfg.Graphics.ClearColor != [4]float32{0.8, 0.8, 0.8, 1} {
		t.Errorf("expected light grey clear colour, got %v", cfg.Graphics.ClearColor)
	}

	// Test camera defaults
	if cfg.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %v", cfg.Camera.FOV)
	}
	if cfg.Camera.SceneRadius != 6 {
		t.Errorf("expected scene radius 6, got %v", cfg.Camera.SceneRadius)
	}
	if cfg.Camera.Direction != [3]float32{0.6, 0.3, 1.0} {
		t.Errorf("expected direction (0.6, 0.3, 1.0), got %v", cfg.Camera.Direction)
	}

	// Test material defaults
	if cfg.Material.Albedo != [3]float32{1, 0, 0} {
		t.Errorf("expected red albedo, got %v", cfg.Material.Albedo)
	}

	// Test wireframe defaults
	opts, err := cfg.WireframeOptions()
	if err != nil {
		t.Fatalf("WireframeOptions: %v", err)
	}
	if opts != (wireframe.Options{}) {
		t.Errorf("expected canonical/reject options, got %+v", opts)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if l := cfg.Logging; l.MaxSizeMB != 50 || l.MaxBackups != 3 || l.MaxAgeDays != 7 || !l.Compress {
		t.Errorf("unexpected rotation defaults: %+v", l)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  gui: false
  clear_color: [1, 1, 1, 1]

model:
  path: "models/bunny.stl"
  watch: true

camera:
  fov: 45
  direction: [0, 0, 1]

wireframe:
  edge_mode: unique
  degenerate: skip
  segments: 12

logging:
  level: "debug"
  log_file: "meshview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.GUI {
		t.Error("expected gui to be false")
	}
	if cfg.Graphics.ClearColor != [4]float32{1, 1, 1, 1} {
		t.Errorf("expected white clear colour, got %v", cfg.Graphics.ClearColor)
	}
	if cfg.Model.Path != "models/bunny.stl" || !cfg.Model.Watch {
		t.Errorf("unexpected model section: %+v", cfg.Model)
	}
	if cfg.Camera.FOV != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Camera.FOV)
	}
	// Unset keys keep their defaults.
	if cfg.Camera.Near != 0.1 {
		t.Errorf("expected default near 0.1, got %v", cfg.Camera.Near)
	}

	opts, err := cfg.WireframeOptions()
	if err != nil {
		t.Fatalf("WireframeOptions: %v", err)
	}
	if opts.Mode != wireframe.EdgeModeUnique || opts.Degenerate != wireframe.DegenerateSkip {
		t.Errorf("unexpected wireframe options: %+v", opts)
	}
	if cfg.Wireframe.Segments != 12 {
		t.Errorf("expected 12 segments, got %d", cfg.Wireframe.Segments)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "meshview.log" {
		t.Errorf("expected log file 'meshview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/meshview.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"panel wider than window", func(c *Config) { c.Graphics.PanelWidth = 5000 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"near beyond far", func(c *Config) { c.Camera.Near = 10; c.Camera.Far = 1 }},
		{"bad edge mode", func(c *Config) { c.Wireframe.EdgeMode = "all" }},
		{"bad degenerate policy", func(c *Config) { c.Wireframe.Degenerate = "ignore" }},
		{"zero radius", func(c *Config) { c.Wireframe.Radius = 0 }},
		{"two segments", func(c *Config) { c.Wireframe.Segments = 2 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"negative log backups", func(c *Config) { c.Logging.MaxBackups = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("wireframe:\n  edge_mode: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "model flag",
			setup: func() { *flagModel = "part.obj" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Model.Path != "part.obj" {
					t.Errorf("expected model part.obj, got %s", cfg.Model.Path)
				}
			},
			teardown: func() { *flagModel = "" },
		},
		{
			name:  "nogui and watch flags",
			setup: func() { *flagNoGUI = true; *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.GUI {
					t.Error("expected gui to be disabled with nogui flag")
				}
				if !cfg.Model.Watch {
					t.Error("expected watch to be enabled")
				}
			},
			teardown: func() { *flagNoGUI = false; *flagWatch = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Path() != configPath {
		t.Errorf("expected path %s, got %s", configPath, cfg.Path())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Wireframe.EdgeMode = "unique"
	cfg.Material.Albedo = [3]float32{0, 0.5, 1}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Wireframe.EdgeMode != "unique" || loaded.Material.Albedo != cfg.Material.Albedo {
		t.Errorf("saved values not restored: %+v", loaded.Wireframe)
	}

	written, err := loaded.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != path {
		t.Errorf("Save wrote %s, want %s", written, path)
	}
}
