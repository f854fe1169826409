// Package material implements the tangent-space BSDF library: every BSDF
// samples and evaluates directions with the surface normal fixed at +z, per
// the path integrator's tangent-frame contract.
package material

import "github.com/df07/go-pathtracer/pkg/core"

// BSDF is a tangent-space scattering distribution at one surface point. wo
// and wi are unit directions in tangent space (z = shading normal).
//
// Sample must set pdf > 0 on every successful sample; a zero f with pdf>0
// means the direction was sampled but carries no energy. ok=false means no
// valid direction exists (e.g. total internal reflection with no fallback
// lobe) and the path terminates.
type BSDF interface {
	Sample(wo core.Vec3, u core.Vec2) (wi core.Vec3, f core.Spectrum, pdf float64, ok bool)
}

// Material produces a fresh BSDF for a hit point. u is a 2D sample for
// materials whose BSDF choice itself is stochastic; no material here uses
// it (Glass picks its lobe inside BSDF.Sample, from that call's u).
type Material interface {
	MakeBSDF(p core.Vec3, u core.Vec2) BSDF
}

// Emitter is implemented by materials that emit radiance in addition to
// (or instead of) scattering.
type Emitter interface {
	EmittedRadiance() core.Spectrum
}

func cosTheta(w core.Vec3) float64 { return w.Z }

func sameHemisphere(a, b core.Vec3) bool { return a.Z*b.Z > 0 }

func reflect(wo core.Vec3) core.Vec3 {
	return core.NewVec3(-wo.X, -wo.Y, wo.Z)
}
