package primitive

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

func TestGeometricPrimitiveTransformsHitToWorld(t *testing.T) {
	sphereMat := material.NewLambertian(texture.NewSolid(core.Gray(0.5)))
	xform := core.Translate(core.NewVec3(5, 0, 0))
	prim := NewGeometricPrimitive(geometry.NewSphere(), xform, sphereMat)

	ray := core.NewRay(core.NewVec3(5, 0, -5), core.NewVec3(0, 0, 1), 0, math.Inf(1))
	isect, ok := prim.Intersect(&ray, nil)
	if !ok {
		t.Fatal("expected a hit")
	}
	want := core.NewVec3(5, 0, -1)
	if math.Abs(isect.P.X-want.X) > 1e-9 || math.Abs(isect.P.Y-want.Y) > 1e-9 || math.Abs(isect.P.Z-want.Z) > 1e-9 {
		t.Errorf("P = %v, want %v", isect.P, want)
	}
	if isect.Prim != Primitive(prim) {
		t.Error("expected isect.Prim to identify the hit primitive")
	}
}

func TestAggregateReturnsClosestHit(t *testing.T) {
	mat := material.NewLambertian(texture.NewSolid(core.Gray(0.5)))
	near := NewGeometricPrimitive(geometry.NewSphere(), core.Translate(core.NewVec3(0, 0, -3)), mat)
	far := NewGeometricPrimitive(geometry.NewSphere(), core.Translate(core.NewVec3(0, 0, -10)), mat)
	agg := NewAggregate([]Primitive{far, near})

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0, math.Inf(1))
	isect, ok := agg.Intersect(&ray, nil)
	if !ok {
		t.Fatal("expected a hit")
	}
	if isect.Prim != Primitive(near) {
		t.Error("expected the nearer primitive to win regardless of list order")
	}
}

func TestSelfHitEnteringOnRefraction(t *testing.T) {
	mat := material.NewGlass(1.5, core.Gray(1))
	prim := NewGeometricPrimitive(geometry.NewSphere(), core.Identity(), mat)

	// First hit from outside.
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 0, math.Inf(1))
	isect, ok := prim.Intersect(&ray, nil)
	if !ok {
		t.Fatal("expected initial hit")
	}

	// Bounce refracting into the sphere along the same +z direction: this
	// must not re-detect the launch point as a new hit on the same primitive.
	bounce := core.NewRay(isect.P, core.NewVec3(0, 0, 1), 0, math.Inf(1))
	next, ok := prim.Intersect(&bounce, &isect)
	if !ok {
		t.Fatal("expected the ray to pass through to the far side")
	}
	if next.P.Z <= isect.P.Z {
		t.Errorf("expected the far-side hit to be further along +z, got %v vs %v", next.P.Z, isect.P.Z)
	}
}
