// Package texture implements the 3D world-space textures sampled by
// materials: a pure function from a world point to a Spectrum.
package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture evaluates a spatially varying reflectance/color at a world point.
type Texture interface {
	Evaluate(p core.Vec3) core.Spectrum
}

// Solid is a constant-color texture.
type Solid struct {
	Color core.Spectrum
}

// NewSolid creates a solid-color texture.
func NewSolid(color core.Spectrum) *Solid { return &Solid{Color: color} }

func (s *Solid) Evaluate(p core.Vec3) core.Spectrum { return s.Color }

// Checker alternates between two colors in a 3D grid of the given cell
// size, based on the parity of floor(p/size) summed across axes.
type Checker struct {
	Size           float64
	Color1, Color2 core.Spectrum
}

// NewChecker creates a 3D checkerboard texture with the given cell size.
func NewChecker(size float64, color1, color2 core.Spectrum) *Checker {
	return &Checker{Size: size, Color1: color1, Color2: color2}
}

func (c *Checker) Evaluate(p core.Vec3) core.Spectrum {
	ix := int(math.Floor(p.X / c.Size))
	iy := int(math.Floor(p.Y / c.Size))
	iz := int(math.Floor(p.Z / c.Size))
	if (ix+iy+iz)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}

// Grid draws thin lines at integer multiples of Spacing along each axis,
// over a background color — useful for visualizing surface parameterization.
type Grid struct {
	Spacing, LineWidth float64
	LineColor, BgColor core.Spectrum
}

// NewGrid creates a 3D grid-line texture.
func NewGrid(spacing, lineWidth float64, lineColor, bgColor core.Spectrum) *Grid {
	return &Grid{Spacing: spacing, LineWidth: lineWidth, LineColor: lineColor, BgColor: bgColor}
}

func (g *Grid) Evaluate(p core.Vec3) core.Spectrum {
	onLine := func(v float64) bool {
		m := math.Mod(v, g.Spacing)
		if m < 0 {
			m += g.Spacing
		}
		return m < g.LineWidth || m > g.Spacing-g.LineWidth
	}
	if onLine(p.X) || onLine(p.Y) || onLine(p.Z) {
		return g.LineColor
	}
	return g.BgColor
}
