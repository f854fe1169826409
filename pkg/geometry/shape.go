package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// SelfHit tells a shape how the incoming ray relates to its own surface,
// replacing a fixed ray epsilon with a contract the shape itself can
// resolve exactly (see spec §4.2 self-intersection policy). The integrator
// sets this from the previous hop's intersection: SelfHitNone when the ray
// origin is unrelated to this shape, SelfHitEntering/SelfHitLeaving when
// the ray was just scattered off this exact primitive.
type SelfHit int

const (
	SelfHitNone SelfHit = iota
	SelfHitEntering
	SelfHitLeaving
)

// LocalHit is the result of a shape intersection in the shape's local
// (object) frame. U/V carry shape-specific parameterization (spherical
// coordinates for Sphere, barycentrics for Triangle).
type LocalHit struct {
	T    float64
	P    core.Vec3
	N    core.Vec3
	U, V float64
}

// Shape is a geometric primitive in its own local frame. Hit receives the
// ray already transformed into local space; on a hit it narrows
// ray.TMax to t and returns the local intersection. Implementations never
// raise: a non-hit is communicated as (LocalHit{}, false).
type Shape interface {
	Hit(ray *core.Ray, self SelfHit) (LocalHit, bool)
	BoundingBox() AABB
}
