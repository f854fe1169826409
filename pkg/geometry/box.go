package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Box is the unit cube [-1,1]^3 in local space.
type Box struct{}

// NewBox creates a unit box.
func NewBox() *Box { return &Box{} }

// Hit uses the slab method; the final normal is the basis vector of the
// axis whose |coordinate| is largest at the hit point, signed by that
// component (per spec §4.2).
func (b *Box) Hit(ray *core.Ray, self SelfHit) (LocalHit, bool) {
	tMin, tMax := ray.TMin, ray.TMax
	hitAxis := -1
	hitSign := 1.0

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Component(axis)
		dir := ray.Direction.Component(axis)

		if math.Abs(dir) < 1e-12 {
			if origin < -1 || origin > 1 {
				return LocalHit{}, false
			}
			continue
		}

		invDir := 1.0 / dir
		t0 := (-1 - origin) * invDir
		t1 := (1 - origin) * invDir
		sign := -1.0
		if t0 > t1 {
			t0, t1 = t1, t0
			sign = 1.0
		}

		if t0 > tMin {
			tMin = t0
			hitAxis = axis
			hitSign = sign
		}
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return LocalHit{}, false
		}
	}

	if hitAxis == -1 || tMin <= ray.TMin || tMin >= ray.TMax {
		return LocalHit{}, false
	}

	ray.TMax = tMin
	p := ray.At(tMin)
	n := core.Vec3{}
	switch hitAxis {
	case 0:
		n = core.NewVec3(hitSign, 0, 0)
	case 1:
		n = core.NewVec3(0, hitSign, 0)
	case 2:
		n = core.NewVec3(0, 0, hitSign)
	}
	return LocalHit{T: tMin, P: p, N: n, U: p.X, V: p.Y}, true
}

func (b *Box) BoundingBox() AABB {
	return AABB{Min: core.NewVec3(-1, -1, -1), Max: core.NewVec3(1, 1, 1)}
}
