package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Lambertian is a perfectly diffuse reflector: wi is sampled uniformly over
// the hemisphere and f = albedo/pi is constant, per spec §4.4.
type Lambertian struct {
	Albedo texture.Texture
}

// NewLambertian creates a Lambertian material with the given reflectance texture.
func NewLambertian(albedo texture.Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

func (m *Lambertian) MakeBSDF(p core.Vec3, u core.Vec2) BSDF {
	return &lambertianBSDF{albedo: m.Albedo.Evaluate(p)}
}

type lambertianBSDF struct {
	albedo core.Spectrum
}

func (b *lambertianBSDF) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Spectrum, float64, bool) {
	wi := uniformSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}
	f := b.albedo.Multiply(1 / math.Pi)
	return wi, f, uniformHemispherePDF, true
}
