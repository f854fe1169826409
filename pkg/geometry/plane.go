package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Plane is the infinite plane y=0 in local space.
type Plane struct{}

// NewPlane creates the unit plane y=0.
func NewPlane() *Plane { return &Plane{} }

func (p *Plane) hitT(ray *core.Ray) (float64, bool) {
	if math.Abs(ray.Direction.Y) < 1e-12 {
		return 0, false
	}
	t := -ray.Origin.Y / ray.Direction.Y
	if t <= ray.TMin || t >= ray.TMax {
		return 0, false
	}
	return t, true
}

// Hit intersects the ray with the plane y=0.
func (p *Plane) Hit(ray *core.Ray, self SelfHit) (LocalHit, bool) {
	t, ok := p.hitT(ray)
	if !ok {
		return LocalHit{}, false
	}
	ray.TMax = t
	pt := ray.At(t)
	return LocalHit{T: t, P: pt, N: core.NewVec3(0, 1, 0), U: pt.X, V: pt.Z}, true
}

// BoundingBox returns a very large (but finite) box: an infinite plane has
// no natural AABB, so callers that place a Plane in a BVH-accelerated
// aggregate should prefer Rectangle instead.
func (p *Plane) BoundingBox() AABB {
	const big = 1e7
	return AABB{Min: core.NewVec3(-big, -1e-4, -big), Max: core.NewVec3(big, 1e-4, big)}
}

// Rectangle is the plane y=0 clipped to |x|<=1, |z|<=1 (a 2x2 quad in
// local space), used wherever the spec calls for a bounded ground/light
// plane that still participates in the BVH's finite-world bound.
type Rectangle struct{ Plane }

// NewRectangle creates a unit rectangle.
func NewRectangle() *Rectangle { return &Rectangle{} }

func (r *Rectangle) Hit(ray *core.Ray, self SelfHit) (LocalHit, bool) {
	t, ok := r.hitT(ray)
	if !ok {
		return LocalHit{}, false
	}
	pt := ray.At(t)
	if math.Abs(pt.X) > 1 || math.Abs(pt.Z) > 1 {
		return LocalHit{}, false
	}
	ray.TMax = t
	return LocalHit{T: t, P: pt, N: core.NewVec3(0, 1, 0), U: (pt.X + 1) / 2, V: (pt.Z + 1) / 2}, true
}

func (r *Rectangle) BoundingBox() AABB {
	return AABB{Min: core.NewVec3(-1, -1e-4, -1), Max: core.NewVec3(1, 1e-4, 1)}
}
