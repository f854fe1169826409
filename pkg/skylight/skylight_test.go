package skylight

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSolidReturnsConstant(t *testing.T) {
	s := NewSolid(core.NewSpectrum(1, 2, 3))
	got := s.Sample(core.NewVec3(0, 1, 0))
	if got != core.NewSpectrum(1, 2, 3) {
		t.Errorf("Solid.Sample = %v, want (1,2,3)", got)
	}
}

func TestCosineZeroBelowHorizon(t *testing.T) {
	c := NewCosine(core.NewSpectrum(1, 1, 1))
	got := c.Sample(core.NewVec3(0, -1, 0))
	if got != (core.Spectrum{}) {
		t.Errorf("Cosine.Sample below horizon = %v, want zero", got)
	}
}

func TestCosineScalesByCubeOfY(t *testing.T) {
	c := NewCosine(core.NewSpectrum(2, 2, 2))
	got := c.Sample(core.NewVec3(0, 1, 0))
	if got.R != 2 {
		t.Errorf("Cosine.Sample straight up = %v, want R=2", got.R)
	}
}

func TestColorMapsDirectionToRGB(t *testing.T) {
	c := NewColor(0.5, 0.01)
	got := c.Sample(core.NewVec3(1, 0, 0))
	want := (1.0 + 1) / 2
	if got.R < want-0.05 || got.R > want+0.05 {
		t.Errorf("Color.Sample(+x).R = %v, want ~%v (off grid line)", got.R, want)
	}
}
