package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Face is one triangle of a mesh, indexing into the mesh's vertex slice.
type Face [3]int

// TriangleMesh is an aggregate Shape over the faces of one loaded mesh,
// accelerated internally by a MeshBVH (component B). It is itself a Shape
// so it composes with GeometricPrimitive like any other shape.
type TriangleMesh struct {
	Vertices      []core.Vec3
	Normals       []core.Vec3 // per-vertex; empty if the mesh has no smoothing
	Faces         []Face
	SmoothShading bool
	bbox          AABB
	bvh           *MeshBVH
}

// NewTriangleMesh builds a mesh from raw vertex/face data and computes its
// acceleration structure. smoothShading selects whether hit normals are the
// flat face normal or the barycentric interpolation of smoothed vertex
// normals (computed via ComputeSmoothNormals, called separately so callers
// can decide whether to smooth before or instead of using imported
// per-vertex normals).
func NewTriangleMesh(vertices []core.Vec3, faces []Face, smoothShading bool) *TriangleMesh {
	m := &TriangleMesh{Vertices: vertices, Faces: faces, SmoothShading: smoothShading}
	m.recomputeBounds()
	m.bvh = BuildMeshBVH(m)
	return m
}

func (m *TriangleMesh) recomputeBounds() {
	box := EmptyAABB()
	for _, v := range m.Vertices {
		box.Min = core.Min(box.Min, v)
		box.Max = core.Max(box.Max, v)
	}
	m.bbox = box
}

// RecenterToFloor translates the mesh so its minimum Y equals floorY.
func (m *TriangleMesh) RecenterToFloor(floorY float64) {
	delta := floorY - m.bbox.Min.Y
	if delta == 0 {
		return
	}
	offset := core.NewVec3(0, delta, 0)
	for i := range m.Vertices {
		m.Vertices[i] = m.Vertices[i].Add(offset)
	}
	m.recomputeBounds()
	m.bvh = BuildMeshBVH(m)
}

// ScaleToHeight uniformly scales the mesh about its own center so its
// vertical extent equals targetHeight.
func (m *TriangleMesh) ScaleToHeight(targetHeight float64) {
	height := m.bbox.Max.Y - m.bbox.Min.Y
	if height <= 0 {
		return
	}
	scale := targetHeight / height
	center := m.bbox.Center()
	for i, v := range m.Vertices {
		m.Vertices[i] = center.Add(v.Subtract(center).Multiply(scale))
	}
	m.recomputeBounds()
	m.bvh = BuildMeshBVH(m)
}

// ComputeSmoothNormals fills Normals with per-vertex angle-weighted
// averages of adjacent unit face normals (face area does not enter): the
// weight at a vertex for one incident face is arccos of the dot product of
// the two incident (normalized) edges meeting at that vertex.
func (m *TriangleMesh) ComputeSmoothNormals() {
	normals := make([]core.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		p0, p1, p2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		faceNormal := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
		if faceNormal.IsZero() {
			continue
		}

		corners := [3][3]int{{f[0], f[1], f[2]}, {f[1], f[2], f[0]}, {f[2], f[0], f[1]}}
		pts := [3]core.Vec3{p0, p1, p2}
		for i, c := range corners {
			vIdx := c[0]
			a := pts[(i+1)%3].Subtract(pts[i]).Normalize()
			b := pts[(i+2)%3].Subtract(pts[i]).Normalize()
			cosAngle := clampUnit(a.Dot(b))
			weight := math.Acos(cosAngle)
			normals[vIdx] = normals[vIdx].Add(faceNormal.Multiply(weight))
		}
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
	m.SmoothShading = true
}

// GetTriangleCount returns the number of faces in the mesh.
func (m *TriangleMesh) GetTriangleCount() int { return len(m.Faces) }

func (m *TriangleMesh) Hit(ray *core.Ray, self SelfHit) (LocalHit, bool) {
	return m.bvh.Hit(ray)
}

func (m *TriangleMesh) BoundingBox() AABB { return m.bbox }

// faceNormalAt returns the shading normal at barycentric (u,v) on face f:
// either the flat face normal, or the barycentric interpolation of the
// three smoothed vertex normals.
func (m *TriangleMesh) faceNormalAt(f Face, u, v float64) core.Vec3 {
	p0, p1, p2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	flat := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	if !m.SmoothShading || len(m.Normals) == 0 {
		return flat
	}
	w := 1 - u - v
	n0, n1, n2 := m.Normals[f[0]], m.Normals[f[1]], m.Normals[f[2]]
	interp := n0.Multiply(w).Add(n1.Multiply(u)).Add(n2.Multiply(v))
	if interp.IsZero() {
		return flat
	}
	return interp.Normalize()
}
