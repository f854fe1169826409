package sampler

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Stratified requires spp to be a perfect square d*d; it places one jittered
// sample per cell of a d x d grid, independently permuted per dimension, per
// spec §4.9.
type Stratified struct{}

// NewStratified creates a Stratified sampler.
func NewStratified() *Stratified { return &Stratified{} }

func (st *Stratified) GenerateSamples(spp, n2d int, seed int64) ([]Sample, error) {
	d := int(math.Round(math.Sqrt(float64(spp))))
	if d*d != spp {
		return nil, fmt.Errorf("sampler: stratified sampling requires a perfect-square sample count, got %d", spp)
	}

	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, spp)
	for i := range samples {
		samples[i].prearranged = make([]core.Vec2, n2d)
	}

	for j := 0; j < n2d; j++ {
		perm := rng.Perm(spp)
		for uu := 0; uu < d; uu++ {
			for vv := 0; vv < d; vv++ {
				cell := uu + vv*d
				idx := perm[cell]
				jx := (float64(uu) + rng.Float64()) / float64(d)
				jy := (float64(vv) + rng.Float64()) / float64(d)
				samples[idx].prearranged[j] = core.NewVec2(jx, jy)
			}
		}
	}

	for i := range samples {
		samples[i].rng = rand.New(rand.NewSource(rng.Int63()))
	}
	return samples, nil
}
