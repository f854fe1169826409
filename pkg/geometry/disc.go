package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Disc is the unit disc (radius 1) in the local plane y=0.
type Disc struct{ Plane }

// NewDisc creates a unit disc.
func NewDisc() *Disc { return &Disc{} }

func (d *Disc) Hit(ray *core.Ray, self SelfHit) (LocalHit, bool) {
	t, ok := d.hitT(ray)
	if !ok {
		return LocalHit{}, false
	}
	pt := ray.At(t)
	if pt.X*pt.X+pt.Z*pt.Z > 1 {
		return LocalHit{}, false
	}
	ray.TMax = t
	r := math.Hypot(pt.X, pt.Z)
	phi := math.Atan2(pt.Z, pt.X)
	return LocalHit{T: t, P: pt, N: core.NewVec3(0, 1, 0), U: phi / (2 * math.Pi), V: r}, true
}

func (d *Disc) BoundingBox() AABB {
	return AABB{Min: core.NewVec3(-1, -1e-4, -1), Max: core.NewVec3(1, 1e-4, 1)}
}
