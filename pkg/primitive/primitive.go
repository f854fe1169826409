// Package primitive implements the scene's primitive tree: transformed
// shapes bound to a material and optional emission, composed into a flat
// aggregate (component H).
package primitive

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Isect is a world-space ray/primitive intersection. Its lifetime is
// stack-local to one ray query; the integrator reads it and discards it.
type Isect struct {
	P    core.Vec3
	N    core.Vec3
	Mat  material.Material
	Le   core.Spectrum
	Prim Primitive // originating primitive, used for the self-hit policy on the next bounce
}

// Primitive is anything Scene.intersect can hit: either a leaf
// GeometricPrimitive or an Aggregate of other primitives.
type Primitive interface {
	// Intersect tests ray (already in world space) against this primitive.
	// prevIsect, if non-nil, is the intersection the ray was just scattered
	// from; a primitive compares prevIsect.Prim against itself to detect
	// self-intersection and uses the dot of ray.Direction against
	// prevIsect.N to tell the shape whether it was shot into or away from
	// its own surface, per spec §4.2.
	Intersect(ray *core.Ray, prevIsect *Isect) (Isect, bool)
	BoundingBox() geometry.AABB
}

// GeometricPrimitive bundles a Shape with its placing transform, material,
// and emitted radiance. It transforms incoming rays to the shape's local
// frame, invokes the shape, and transforms the hit back to world space.
type GeometricPrimitive struct {
	Shape     geometry.Shape
	Material  material.Material
	Transform core.Transform // world-from-primitive
	Emitted   core.Spectrum
}

// NewGeometricPrimitive creates a primitive from a shape, its
// world-from-primitive placement, and a material.
func NewGeometricPrimitive(shape geometry.Shape, xform core.Transform, mat material.Material) *GeometricPrimitive {
	return &GeometricPrimitive{Shape: shape, Material: mat, Transform: xform}
}

// WithEmission sets the primitive's emitted radiance and returns it, for
// fluent construction of area lights.
func (p *GeometricPrimitive) WithEmission(le core.Spectrum) *GeometricPrimitive {
	p.Emitted = le
	return p
}

func (p *GeometricPrimitive) Intersect(ray *core.Ray, prevIsect *Isect) (Isect, bool) {
	inv := p.Transform.Inverse()
	localRay := inv.Ray(*ray)

	self := geometry.SelfHitNone
	if prevIsect != nil && prevIsect.Prim == Primitive(p) {
		if ray.Direction.Dot(prevIsect.N) > 0 {
			self = geometry.SelfHitLeaving
		} else {
			self = geometry.SelfHitEntering
		}
	}

	hit, ok := p.Shape.Hit(&localRay, self)
	if !ok {
		return Isect{}, false
	}
	ray.TMax = localRay.TMax

	worldP := p.Transform.Point(hit.P)
	worldN := p.Transform.Normal(hit.N).Normalize()

	return Isect{
		P:    worldP,
		N:    worldN,
		Mat:  p.Material,
		Le:   p.Emitted,
		Prim: p,
	}, true
}

func (p *GeometricPrimitive) BoundingBox() geometry.AABB {
	box := p.Shape.BoundingBox()
	return geometry.NewAABBFromPoints(
		p.Transform.Point(core.NewVec3(box.Min.X, box.Min.Y, box.Min.Z)),
		p.Transform.Point(core.NewVec3(box.Min.X, box.Min.Y, box.Max.Z)),
		p.Transform.Point(core.NewVec3(box.Min.X, box.Max.Y, box.Min.Z)),
		p.Transform.Point(core.NewVec3(box.Min.X, box.Max.Y, box.Max.Z)),
		p.Transform.Point(core.NewVec3(box.Max.X, box.Min.Y, box.Min.Z)),
		p.Transform.Point(core.NewVec3(box.Max.X, box.Min.Y, box.Max.Z)),
		p.Transform.Point(core.NewVec3(box.Max.X, box.Max.Y, box.Min.Z)),
		p.Transform.Point(core.NewVec3(box.Max.X, box.Max.Y, box.Max.Z)),
	)
}

// Aggregate is a Primitive containing other primitives; the baseline
// implementation is a flat list tested linearly (the mesh BVH lives inside
// geometry.TriangleMesh, not here — this Aggregate is the top-level scene
// primitive list, per spec §4.1's distinction between the two).
type Aggregate struct {
	Primitives []Primitive
	bbox       geometry.AABB
}

// NewAggregate builds a flat aggregate over the given primitives.
func NewAggregate(prims []Primitive) *Aggregate {
	box := geometry.EmptyAABB()
	for _, p := range prims {
		box = box.Union(p.BoundingBox())
	}
	return &Aggregate{Primitives: prims, bbox: box}
}

func (a *Aggregate) Intersect(ray *core.Ray, prevIsect *Isect) (Isect, bool) {
	var best Isect
	hitAny := false
	for _, p := range a.Primitives {
		if isect, ok := p.Intersect(ray, prevIsect); ok {
			best = isect
			hitAny = true
		}
	}
	return best, hitAny
}

func (a *Aggregate) BoundingBox() geometry.AABB { return a.bbox }
