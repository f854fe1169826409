package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) < eps }

// TestFresnelDielectricSymmetricUnderSnell checks that the dielectric
// Fresnel reflectance computed at the incident angle equals the
// reflectance computed at the Snell-refracted angle from the other side
// (reciprocity of the exact formula).
func TestFresnelDielectricSymmetricUnderSnell(t *testing.T) {
	etaA, etaB := 1.0, 1.5
	for _, cosI := range []float64{0.1, 0.3, 0.6, 0.9, 0.99} {
		rI := FresnelDielectric(cosI, etaA, etaB)

		sinI := math.Sqrt(1 - cosI*cosI)
		sinT := etaA / etaB * sinI
		cosT := math.Sqrt(1 - sinT*sinT)
		rT := FresnelDielectric(cosT, etaB, etaA)

		if !almostEqual(rI, rT, 1e-9) {
			t.Errorf("cosI=%v: R(etaA->etaB)=%v R(etaB->etaA at snell angle)=%v", cosI, rI, rT)
		}
	}
}

func TestFresnelDielectricNormalIncidence(t *testing.T) {
	r := FresnelDielectric(1, 1, 1.5)
	want := math.Pow((1.5-1)/(1.5+1), 2)
	if !almostEqual(r, want, 1e-9) {
		t.Errorf("R(normal) = %v, want %v", r, want)
	}
}

// TestLambertianEnergyConservation Monte-Carlo integrates f*cos(theta)/pdf
// over many uniform-hemisphere samples and checks the estimate converges to
// the albedo (property: Lambertian energy conservation).
func TestLambertianEnergyConservation(t *testing.T) {
	albedo := core.NewSpectrum(0.5, 0.7, 0.2)
	mat := NewLambertian(texture.NewSolid(albedo))
	bsdf := mat.MakeBSDF(core.Vec3{}, core.Vec2{})

	rng := rand.New(rand.NewSource(42))
	wo := core.NewVec3(0, 0, 1)
	var sum core.Spectrum
	const n = 200000
	for i := 0; i < n; i++ {
		u := core.NewVec2(rng.Float64(), rng.Float64())
		wi, f, pdf, ok := bsdf.Sample(wo, u)
		if !ok || pdf <= 0 {
			t.Fatalf("sample %d failed", i)
		}
		contrib := f.Multiply(math.Abs(wi.Z) / pdf)
		sum = sum.Add(contrib)
	}
	estimate := sum.Multiply(1.0 / n)

	if !almostEqual(estimate.R, albedo.R, 0.01) || !almostEqual(estimate.G, albedo.G, 0.01) || !almostEqual(estimate.B, albedo.B, 0.01) {
		t.Errorf("estimate = %v, want approximately %v", estimate, albedo)
	}
}

func TestSpecularReflectionMirrorsDirection(t *testing.T) {
	fresnel := func(cosThetaO float64) core.Spectrum { return core.Gray(1) }
	bsdf := &specularReflectionBSDF{fresnel: fresnel}
	wo := core.NewVec3(0.3, 0.4, math.Sqrt(1-0.3*0.3-0.4*0.4))
	wi, _, pdf, ok := bsdf.Sample(wo, core.Vec2{})
	if !ok {
		t.Fatal("expected a sample")
	}
	if pdf != 1 {
		t.Errorf("pdf = %v, want 1", pdf)
	}
	want := core.NewVec3(-wo.X, -wo.Y, wo.Z)
	if !almostEqual(wi.X, want.X, 1e-9) || !almostEqual(wi.Y, want.Y, 1e-9) || !almostEqual(wi.Z, want.Z, 1e-9) {
		t.Errorf("wi = %v, want %v", wi, want)
	}
}

func TestSpecularTransmissionTotalInternalReflection(t *testing.T) {
	bsdf := &specularTransmissionBSDF{etaA: 1.5, etaB: 1.0}
	// A grazing ray inside the denser medium exceeds the critical angle.
	wo := core.NewVec3(0.95, 0, math.Sqrt(1-0.95*0.95))
	_, _, _, ok := bsdf.Sample(wo, core.Vec2{})
	if ok {
		t.Error("expected total internal reflection to report no transmission lobe")
	}
}

func TestGlassFallsBackToReflectionUnderTIR(t *testing.T) {
	glass := NewGlass(1.5, core.Gray(1))
	bsdf := glass.MakeBSDF(core.Vec3{}, core.Vec2{})
	// wo.z < 0 puts the ray inside the denser glass medium approaching the
	// air interface at a grazing angle past the critical angle.
	wo := core.NewVec3(0.95, 0, -math.Sqrt(1-0.95*0.95))
	// u.x >= 0.5 requests the transmission branch, which must fall back to
	// reflection rather than fail outright once asked past the critical angle.
	wi, _, pdf, ok := bsdf.Sample(wo, core.NewVec2(0.9, 0.5))
	if !ok {
		t.Fatal("expected fallback reflection sample")
	}
	if pdf != 1 {
		t.Errorf("pdf = %v, want 1", pdf)
	}
	if wi.Z >= 0 {
		t.Errorf("reflected wi.z should stay on the incident side (z<0), got %v", wi.Z)
	}
}
