package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const triangleEpsilon = 1e-8

// IntersectTriangle implements the Möller-Trumbore ray/triangle test shared
// by the standalone Triangle shape and the mesh BVH's per-face test.
// cullBackface rejects det<=epsilon (single triangles, per spec §4.2);
// meshes pass cullBackface=false and reject only det≈0 so that both faces
// of a double-sided mesh triangle are hit.
func IntersectTriangle(ray *core.Ray, v0, v1, v2 core.Vec3, cullBackface bool) (t, u, v float64, ok bool) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)

	if cullBackface {
		if det <= triangleEpsilon {
			return 0, 0, 0, false
		}
	} else if math.Abs(det) < triangleEpsilon {
		return 0, 0, 0, false
	}

	invDet := 1.0 / det
	tvec := ray.Origin.Subtract(v0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(edge1)
	v = ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = edge2.Dot(qvec) * invDet
	if t <= ray.TMin || t >= ray.TMax {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// Triangle is a single triangle in local space, with backface culling
// enabled (the design choice stated in spec §4.2 for standalone triangles).
type Triangle struct {
	V0, V1, V2 core.Vec3
}

// NewTriangle creates a standalone triangle.
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2}
}

func (tr *Triangle) Hit(ray *core.Ray, self SelfHit) (LocalHit, bool) {
	t, u, v, ok := IntersectTriangle(ray, tr.V0, tr.V1, tr.V2, true)
	if !ok {
		return LocalHit{}, false
	}
	ray.TMax = t
	n := tr.V1.Subtract(tr.V0).Cross(tr.V2.Subtract(tr.V0)).Normalize()
	return LocalHit{T: t, P: ray.At(t), N: n, U: u, V: v}, true
}

func (tr *Triangle) BoundingBox() AABB {
	return NewAABBFromPoints(tr.V0, tr.V1, tr.V2)
}
