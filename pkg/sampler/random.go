package sampler

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Random generates independent uniform samples with no stratification.
type Random struct{}

// NewRandom creates a Random sampler.
func NewRandom() *Random { return &Random{} }

func (r *Random) GenerateSamples(spp, n2d int, seed int64) ([]Sample, error) {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, spp)
	for i := range samples {
		vals := make([]core.Vec2, n2d)
		for j := range vals {
			vals[j] = core.NewVec2(rng.Float64(), rng.Float64())
		}
		samples[i] = Sample{prearranged: vals, rng: rand.New(rand.NewSource(rng.Int63()))}
	}
	return samples, nil
}
