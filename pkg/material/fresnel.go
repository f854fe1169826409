package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// FresnelDielectric returns unpolarized reflectance at a dielectric
// interface: the average of the squared parallel and perpendicular
// amplitude reflectances. Indices are swapped if cosThetaI < 0 (ray
// leaving the denser medium), per spec §4.4.
func FresnelDielectric(cosThetaI, etaI, etaT float64) float64 {
	cosI := clampUnit(cosThetaI)
	if cosI < 0 {
		etaI, etaT = etaT, etaI
		cosI = -cosI
	}

	sinThetaI := math.Sqrt(math.Max(0, 1-cosI*cosI))
	sinThetaT := etaI / etaT * sinThetaI
	if sinThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(math.Max(0, 1-sinThetaT*sinThetaT))

	rParallel := (etaT*cosI - etaI*cosThetaT) / (etaT*cosI + etaI*cosThetaT)
	rPerp := (etaI*cosI - etaT*cosThetaT) / (etaI*cosI + etaT*cosThetaT)
	return (rParallel*rParallel + rPerp*rPerp) / 2
}

// FresnelConductor returns the unpolarized reflectance at a conductor
// interface with complex index of refraction eta+ik, evaluated per channel
// using the standard closed-form (no complex arithmetic needed), per spec
// §4.4.
func FresnelConductor(cosThetaI float64, eta, k core.Spectrum) core.Spectrum {
	cosI := clampUnit(cosThetaI)
	cos2 := cosI * cosI
	sin2 := 1 - cos2
	sin4 := sin2 * sin2

	channel := func(eta, k float64) float64 {
		eta2k2 := eta*eta - k*k
		t0 := eta2k2 - sin2
		a2plusb2 := math.Sqrt(math.Max(0, t0*t0+4*eta*eta*k*k))
		t1 := a2plusb2 + cos2
		a := math.Sqrt(math.Max(0, 0.5*(a2plusb2+t0)))
		t2 := 2 * a * cosI
		rs := (t1 - t2) / (t1 + t2)

		t3 := cos2*a2plusb2 + sin4
		t4 := t2 * sin2
		rp := rs * (t3 - t4) / (t3 + t4)

		return (rp + rs) / 2
	}
	return core.NewSpectrum(channel(eta.R, k.R), channel(eta.G, k.G), channel(eta.B, k.B))
}
