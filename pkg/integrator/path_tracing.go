// Package integrator implements the single recursive radiance estimator
// (component I), expressed as an explicit loop in throughput-accumulation
// form rather than true recursion, so path length is bounded only by
// Russian-roulette termination and never by call-stack depth.
package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/primitive"
	"github.com/df07/go-pathtracer/pkg/sampler"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RussianRouletteP is the fixed survival probability applied at every
// bounce; long low-radiance paths are terminated rarely, and every
// surviving bounce's contribution is divided once by this probability to
// keep the estimator unbiased.
const RussianRouletteP = 0.99

// PathTracer computes outgoing radiance along a camera ray against a Scene.
// When Debug is set, each bounce's throughput and hit primitive are logged
// to Logger — a per-pixel debug trace, enabled by the CLI's -d flag.
type PathTracer struct {
	Debug  bool
	Logger core.Logger
}

// New creates a path tracer with debug tracing disabled.
func New() *PathTracer { return &PathTracer{} }

// Li estimates the radiance arriving along ray, per spec §4.6.
func (pt *PathTracer) Li(ray core.Ray, s *scene.Scene, sample *sampler.Sample) core.Spectrum {
	var total core.Spectrum
	throughput := core.Gray(1)

	var prevIsect *primitive.Isect
	currentRay := ray

	for bounce := 0; ; bounce++ {
		if sample.Randf() > RussianRouletteP {
			pt.trace(bounce, "terminated by russian roulette", throughput)
			return total
		}

		isect, hit := s.Intersect(&currentRay, prevIsect)
		if !hit {
			sky := s.Skylight.Sample(currentRay.Direction)
			total = total.Add(throughput.MultiplySpectrum(sky).Multiply(1 / RussianRouletteP))
			pt.trace(bounce, "escaped to skylight", throughput)
			return total
		}

		total = total.Add(throughput.MultiplySpectrum(isect.Le).Multiply(1 / RussianRouletteP))
		pt.trace(bounce, fmt.Sprintf("hit prim=%p", isect.Prim), throughput)

		bsdf := isect.Mat.MakeBSDF(isect.P, sample.Next2D())
		tangent := core.TangentFrame(isect.N)
		wo := tangent.Vector(currentRay.Direction.Negate())

		wi, f, pdf, ok := bsdf.Sample(wo, sample.Next2D())
		if !ok || pdf <= 0 {
			pt.trace(bounce, "absorbed (no bsdf lobe sampled)", throughput)
			return total
		}

		cosTheta := math.Abs(wi.Z)
		throughput = throughput.MultiplySpectrum(f).Multiply(cosTheta / pdf / RussianRouletteP)

		worldWi := tangent.Inverse().Vector(wi)
		currentRay = core.NewRay(isect.P, worldWi, 0, math.Inf(1))
		prevIsectCopy := isect
		prevIsect = &prevIsectCopy
	}
}

func (pt *PathTracer) trace(bounce int, event string, throughput core.Spectrum) {
	if !pt.Debug || pt.Logger == nil {
		return
	}
	pt.Logger.Printf("  pt[%d] %s: throughput=%v\n", bounce, event, throughput)
}
