package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshview/internal/wireframe"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks enum strings and sizes.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	check(c.Graphics.PanelWidth > 0 && c.Graphics.PanelWidth < c.Graphics.Width,
		"graphics: panel_width %d must be in (0, width)", c.Graphics.PanelWidth)
	check(c.Graphics.MSAASamples >= 0, "graphics: msaa_samples must not be negative")

	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera: fov %v must be in (0, 180)", c.Camera.FOV)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near,
		"camera: need 0 < near < far, got %v, %v", c.Camera.Near, c.Camera.Far)
	check(c.Camera.SceneRadius > 0, "camera: scene_radius must be positive")

	check(c.Material.Shininess > 0, "material: shininess must be positive")

	if _, err := wireframe.ParseEdgeMode(c.Wireframe.EdgeMode); err != nil {
		errs = append(errs, fmt.Errorf("wireframe: %w", err))
	}
	if _, err := wireframe.ParseDegeneratePolicy(c.Wireframe.Degenerate); err != nil {
		errs = append(errs, fmt.Errorf("wireframe: %w", err))
	}
	check(c.Wireframe.Radius > 0, "wireframe: radius must be positive")
	check(c.Wireframe.Segments >= 3, "wireframe: segments %d must be at least 3", c.Wireframe.Segments)
	check(c.Wireframe.VertexScale > 0, "wireframe: vertex_scale must be positive")

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	check(c.Logging.MaxSizeMB >= 0 && c.Logging.MaxBackups >= 0 && c.Logging.MaxAgeDays >= 0,
		"logging: rotation limits must not be negative")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// WireframeOptions converts the wireframe section into extraction options.
func (c *Config) WireframeOptions() (wireframe.Options, error) {
	mode, err := wireframe.ParseEdgeMode(c.Wireframe.EdgeMode)
	if err != nil {
		return wireframe.Options{}, err
	}
	policy, err := wireframe.ParseDegeneratePolicy(c.Wireframe.Degenerate)
	if err != nil {
		return wireframe.Options{}, err
	}
	return wireframe.Options{Mode: mode, Degenerate: policy}, nil
}
