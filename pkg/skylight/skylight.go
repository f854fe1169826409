// Package skylight implements the background radiance sampled when a ray
// escapes the scene (component L).
package skylight

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Skylight returns the radiance seen along an escaping ray direction.
type Skylight interface {
	Sample(dir core.Vec3) core.Spectrum
}

// Solid returns a constant radiance regardless of direction.
type Solid struct {
	R core.Spectrum
}

// NewSolid creates a constant-radiance skylight.
func NewSolid(r core.Spectrum) *Solid { return &Solid{R: r} }

func (s *Solid) Sample(dir core.Vec3) core.Spectrum { return s.R }

// Cosine is a simple upward-biased background: R * max(0, dir.y^3).
type Cosine struct {
	R core.Spectrum
}

// NewCosine creates a cosine-falloff skylight.
func NewCosine(r core.Spectrum) *Cosine { return &Cosine{R: r} }

func (c *Cosine) Sample(dir core.Vec3) core.Spectrum {
	return c.R.Multiply(math.Max(0, dir.Y*dir.Y*dir.Y))
}

// Color is a debug skylight: ((dir+1)/2) masked by a thin grid in (theta,
// phi), useful for visually checking direction orientation.
type Color struct {
	Spacing, LineWidth float64
}

// NewColor creates a debug-grid skylight with the given angular grid
// spacing and line width, both in radians.
func NewColor(spacing, lineWidth float64) *Color {
	return &Color{Spacing: spacing, LineWidth: lineWidth}
}

func (c *Color) Sample(dir core.Vec3) core.Spectrum {
	theta := math.Acos(clampUnit(dir.Y))
	phi := math.Atan2(dir.Z, dir.X) + math.Pi

	onGrid := func(v float64) bool {
		m := math.Mod(v, c.Spacing)
		if m < 0 {
			m += c.Spacing
		}
		return m < c.LineWidth
	}
	base := core.NewSpectrum((dir.X+1)/2, (dir.Y+1)/2, (dir.Z+1)/2)
	if onGrid(theta) || onGrid(phi) {
		return base.Multiply(0.2)
	}
	return base
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
