package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// specularReflectionBSDF is a mirror lobe tinted by a (possibly
// direction-dependent) Fresnel reflectance, per spec §4.4.
type specularReflectionBSDF struct {
	fresnel func(cosThetaO float64) core.Spectrum
}

func (b *specularReflectionBSDF) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Spectrum, float64, bool) {
	wi := reflect(wo)
	cosI := math.Abs(wi.Z)
	if cosI == 0 {
		return wi, core.Spectrum{}, 0, false
	}
	fr := b.fresnel(cosTheta(wo))
	f := fr.Multiply(1 / cosI)
	return wi, f, 1, true
}

// specularTransmissionBSDF is a dielectric refraction lobe; etaA is the
// index on the side of the shading normal (+z), etaB on the far side.
type specularTransmissionBSDF struct {
	etaA, etaB float64
}

func (b *specularTransmissionBSDF) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Spectrum, float64, bool) {
	wi, transmittance, ok := refract(wo, b.etaA, b.etaB)
	if !ok {
		return core.Vec3{}, core.Spectrum{}, 0, false
	}
	f := core.Gray(transmittance / math.Abs(wi.Z))
	return wi, f, 1, true
}

// refract solves Snell's law for a ray transmitting through a dielectric
// interface with index etaA on the +z side and etaB on the -z side, per
// spec §4.4. ok=false signals total internal reflection. The returned
// transmittance already includes the (etaI/etaT)^2 radiance-compression
// factor and (1-F); it still needs dividing by |wi.z| before use as a BSDF
// value.
func refract(wo core.Vec3, etaA, etaB float64) (wi core.Vec3, transmittance float64, ok bool) {
	entering := wo.Z > 0
	etaI, etaT := etaA, etaB
	if !entering {
		etaI, etaT = etaT, etaI
	}

	cosThetaO := math.Abs(wo.Z)
	sin2ThetaO := math.Max(0, 1-cosThetaO*cosThetaO)
	eta := etaI / etaT
	sin2ThetaI := eta * eta * sin2ThetaO
	if sin2ThetaI >= 1 {
		return core.Vec3{}, 0, false // total internal reflection
	}
	cosThetaI := math.Sqrt(1 - sin2ThetaI)

	wi = core.NewVec3(eta*-wo.X, eta*-wo.Y, cosThetaI)
	if wo.Z > 0 {
		wi.Z = -wi.Z
	}

	fr := FresnelDielectric(cosTheta(wo), etaI, etaT)
	transmittance = (eta * eta) * (1 - fr)
	return wi, transmittance, true
}
