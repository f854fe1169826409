// Package sampler generates the per-pixel sequences of 2D samples consumed
// by the path integrator (component D).
package sampler

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sample holds one pixel's prearranged sequence of 2D samples plus an RNG
// for overflow once that sequence is exhausted.
type Sample struct {
	prearranged []core.Vec2
	next        int
	rng         *rand.Rand
}

// Next2D returns the next prearranged 2D sample, falling back to a fresh
// uniform pair once the prearranged budget is exhausted.
func (s *Sample) Next2D() core.Vec2 {
	if s.next < len(s.prearranged) {
		v := s.prearranged[s.next]
		s.next++
		return v
	}
	return core.NewVec2(s.rng.Float64(), s.rng.Float64())
}

// Randf returns a single fresh uniform float in [0,1), used by the
// integrator's Russian-roulette test.
func (s *Sample) Randf() float64 { return s.rng.Float64() }

// Sampler generates, for one pixel, spp Sample objects each prearranged
// with n2d independent 2D dimensions, seeded deterministically from seed.
type Sampler interface {
	GenerateSamples(spp, n2d int, seed int64) ([]Sample, error)
}
