// Package geometry implements the ray/shape intersection kernel (component
// A) and the mesh BVH (component B) of the renderer.
package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max core.Vec3
}

// EmptyAABB returns a degenerate box that Union absorbs into the first
// real box unioned with it.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: core.NewVec3(inf, inf, inf), Max: core.NewVec3(-inf, -inf, -inf)}
}

// NewAABBFromPoints returns the smallest AABB containing every point.
func NewAABBFromPoints(points ...core.Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box.Min = core.Min(box.Min, p)
		box.Max = core.Max(box.Max, p)
	}
	return box
}

// Union returns an AABB bounding both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: core.Min(b.Min, o.Min), Max: core.Max(b.Max, o.Max)}
}

// Center returns the box's centroid.
func (b AABB) Center() core.Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }

// Size returns the extent along each axis.
func (b AABB) Size() core.Vec3 { return b.Max.Subtract(b.Min) }

// LongestAxis returns 0/1/2 for the axis (X/Y/Z) with the largest extent.
func (b AABB) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Hit tests the ray against the box using the slab method, honoring the
// ray's own TMin/TMax interval.
func (b AABB) Hit(ray core.Ray) bool {
	tMin, tMax := ray.TMin, ray.TMax
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Component(axis)
		dir := ray.Direction.Component(axis)
		lo := b.Min.Component(axis)
		hi := b.Max.Component(axis)

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		invDir := 1.0 / dir
		t0 := (lo - origin) * invDir
		t1 := (hi - origin) * invDir
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return false
		}
	}
	return true
}
