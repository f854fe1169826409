package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere is the unit sphere at the origin in local space; world placement
// and radius come from the enclosing primitive's transform.
type Sphere struct{}

// NewSphere creates a unit sphere.
func NewSphere() *Sphere { return &Sphere{} }

// Hit solves At²+Bt+C=0 for the unit sphere, per spec §4.2.
func (s *Sphere) Hit(ray *core.Ray, self SelfHit) (LocalHit, bool) {
	o, d := ray.Origin, ray.Direction
	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - 1

	disc := b*b - 4*a*c
	if disc < 0 {
		return LocalHit{}, false
	}
	sqrtDisc := math.Sqrt(disc)
	r0 := (-b - sqrtDisc) / (2 * a)
	r1 := (-b + sqrtDisc) / (2 * a)

	root, ok := s.chooseRoot(ray, self, r0, r1)
	if !ok {
		return LocalHit{}, false
	}

	ray.TMax = root
	p := ray.At(root)
	n := p.Normalize() // renormalize: p should already be unit length, but
	// floating point drift near grazing angles makes this cheap insurance.

	theta := math.Acos(clampUnit(-n.Y))
	phi := math.Atan2(-n.Z, n.X) + math.Pi
	return LocalHit{T: root, P: p, N: n, U: phi / (2 * math.Pi), V: theta / math.Pi}, true
}

// chooseRoot applies the self-intersection policy: when the ray is known
// to originate on this very sphere (self != SelfHitNone), the root nearest
// zero is the spurious re-intersection with the launch point and must be
// discarded regardless of tMin/tMax; the surviving root is tested normally.
func (s *Sphere) chooseRoot(ray *core.Ray, self SelfHit, r0, r1 float64) (float64, bool) {
	inRange := func(t float64) bool { return t > ray.TMin && t < ray.TMax }

	if self == SelfHitNone {
		if inRange(r0) {
			return r0, true
		}
		if inRange(r1) {
			return r1, true
		}
		return 0, false
	}

	// One of r0/r1 is the (near-zero) launch point; keep the other.
	far := r1
	if math.Abs(r0) > math.Abs(r1) {
		far = r0
	}
	if inRange(far) {
		return far, true
	}
	return 0, false
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

// BoundingBox returns the bounding box of the unit sphere.
func (s *Sphere) BoundingBox() AABB {
	return AABB{Min: core.NewVec3(-1, -1, -1), Max: core.NewVec3(1, 1, 1)}
}
