package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Glass is a dielectric material combining a specular reflection lobe and a
// specular transmission lobe, chosen stochastically 50/50 rather than
// weighted by the Fresnel term (see the open question preserved in the
// project notes: this can over- or under-sample the physically correct
// branch at grazing angles, but keeps the BSDF delta and trivially
// unbiased).
type Glass struct {
	IOR  float64
	Tint core.Spectrum
}

// NewGlass creates a dielectric material with the given index of
// refraction and a reflectance/transmittance tint (Gray(1) for clear glass).
func NewGlass(ior float64, tint core.Spectrum) *Glass {
	return &Glass{IOR: ior, Tint: tint}
}

func (m *Glass) MakeBSDF(p core.Vec3, u core.Vec2) BSDF {
	return &glassBSDF{ior: m.IOR, tint: m.Tint}
}

type glassBSDF struct {
	ior  float64
	tint core.Spectrum
}

func (b *glassBSDF) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Spectrum, float64, bool) {
	if u.X < 0.5 {
		return b.reflect(wo)
	}
	if wi, f, pdf, ok := b.transmit(wo); ok {
		return wi, f, pdf, ok
	}
	// Total internal reflection: no transmission lobe exists at this
	// angle, so the material falls back to the reflection lobe instead.
	return b.reflect(wo)
}

func (b *glassBSDF) reflect(wo core.Vec3) (core.Vec3, core.Spectrum, float64, bool) {
	wi := reflect(wo)
	cosI := math.Abs(wi.Z)
	if cosI == 0 {
		return wi, core.Spectrum{}, 0, false
	}
	fr := FresnelDielectric(cosTheta(wo), 1, b.ior)
	f := b.tint.Multiply(2 * fr / cosI)
	return wi, f, 1, true
}

func (b *glassBSDF) transmit(wo core.Vec3) (core.Vec3, core.Spectrum, float64, bool) {
	wi, transmittance, ok := refract(wo, 1, b.ior)
	if !ok {
		return core.Vec3{}, core.Spectrum{}, 0, false
	}
	f := b.tint.Multiply(2 * transmittance / math.Abs(wi.Z))
	return wi, f, 1, true
}
