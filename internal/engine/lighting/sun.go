// Package lighting provides the directional light used to shade models.
package lighting

import (
	"math"

	"github.com/Faultbox/meshview/internal/config"
)

// Light is a directional light plus an ambient term.
type Light struct {
	Direction [3]float32 // Unit vector toward the light
	Color     [3]float32
	Ambient   [3]float32
}

// SunDirection converts azimuth/elevation angles in degrees to a unit
// vector pointing toward the sun. Azimuth rotates around +Y starting at +Z;
// elevation is measured up from the horizon.
func SunDirection(azimuth, elevation float32) [3]float32 {
	az := float64(azimuth) * math.Pi / 180.0
	el := float64(elevation) * math.Pi / 180.0

	return [3]float32{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// FromConfig builds the sun light described by the lighting section.
func FromConfig(cfg config.LightingConfig) Light {
	return Light{
		Direction: SunDirection(cfg.SunAzimuth, cfg.SunElevation),
		Color:     cfg.SunColor,
		Ambient:   cfg.Ambient,
	}
}

// Headlight returns l with its direction replaced by dir, normalised.
// A zero dir leaves l unchanged.
func (l Light) Headlight(dir [3]float32) Light {
	n := float32(math.Sqrt(float64(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])))
	if n == 0 {
		return l
	}
	l.Direction = [3]float32{dir[0] / n, dir[1] / n, dir[2] / n}
	return l
}
