package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// OrenNayar is a rough-diffuse reflector parameterized by roughness Sigma
// (radians of microfacet slope standard deviation), per spec §4.4.
type OrenNayar struct {
	Albedo texture.Texture
	Sigma  float64
}

// NewOrenNayar creates an Oren-Nayar material with the given reflectance
// texture and roughness.
func NewOrenNayar(albedo texture.Texture, sigma float64) *OrenNayar {
	return &OrenNayar{Albedo: albedo, Sigma: sigma}
}

func (m *OrenNayar) MakeBSDF(p core.Vec3, u core.Vec2) BSDF {
	sigma2 := m.Sigma * m.Sigma
	return &orenNayarBSDF{
		albedo: m.Albedo.Evaluate(p),
		a:      1 - sigma2/(2*(sigma2+0.33)),
		b:      0.45 * sigma2 / (sigma2 + 0.09),
	}
}

type orenNayarBSDF struct {
	albedo core.Spectrum
	a, b   float64
}

func (bsdf *orenNayarBSDF) Sample(wo core.Vec3, u core.Vec2) (core.Vec3, core.Spectrum, float64, bool) {
	wi := uniformSampleHemisphere(u)
	if wo.Z < 0 {
		wi.Z = -wi.Z
	}

	if wo.Z <= 0 {
		return wi, core.Spectrum{}, uniformHemispherePDF, true
	}

	thetaI := math.Acos(clampUnit(wi.Z))
	thetaO := math.Acos(clampUnit(wo.Z))
	a := math.Max(thetaI, thetaO)
	b := math.Min(thetaI, thetaO)

	sinThetaI := math.Sin(thetaI)
	sinThetaO := math.Sin(thetaO)
	var cosDeltaPhi float64
	if sinThetaI > 1e-9 && sinThetaO > 1e-9 {
		cosPhiI, sinPhiI := wi.X/sinThetaI, wi.Y/sinThetaI
		cosPhiO, sinPhiO := wo.X/sinThetaO, wo.Y/sinThetaO
		cosDeltaPhi = cosPhiI*cosPhiO + sinPhiI*sinPhiO
	}

	factor := bsdf.a + bsdf.b*math.Max(0, cosDeltaPhi)*math.Sin(a)*math.Tan(b)
	f := bsdf.albedo.Multiply(factor / math.Pi)
	return wi, f, uniformHemispherePDF, true
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
