package material

import "github.com/df07/go-pathtracer/pkg/core"

// Emissive is a material that carries a constant radiance and does not
// scatter: MakeBSDF returns a BSDF that absorbs everything, so a path ends
// at an emissive hit. The radiance a hit contributes comes from the
// GeometricPrimitive's Emitted field (set with WithEmission);
// GeometricPrimitive does not read EmittedRadiance.
type Emissive struct {
	Radiance core.Spectrum
}

// NewEmissive creates a light-emitting material with the given radiance.
func NewEmissive(radiance core.Spectrum) *Emissive { return &Emissive{Radiance: radiance} }

func (m *Emissive) EmittedRadiance() core.Spectrum { return m.Radiance }

func (m *Emissive) MakeBSDF(p core.Vec3, u core.Vec2) BSDF { return absorbingBSDF{} }

type absorbingBSDF struct{}

func (absorbingBSDF) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Spectrum, float64, bool) {
	return core.Vec3{}, core.Spectrum{}, 0, false
}
