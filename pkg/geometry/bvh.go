package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// meshLeafThreshold is the maximum face count a MeshBVH leaf may hold
// before the builder attempts to split it further (spec §4.3).
const meshLeafThreshold = 32

// meshBVHNode is one node of a MeshBVH: an interior node has left/right set
// and no faces; a leaf has faces set and no children.
type meshBVHNode struct {
	bounds      AABB
	left, right *meshBVHNode
	faces       []int
}

// MeshBVH is a BVH scoped to a single mesh's faces (component B). Unlike a
// general-purpose BVH over arbitrary shapes, it splits on the midpoint of
// the longest axis and duplicates straddling faces into both children
// rather than partitioning by face count, per spec §4.3.
type MeshBVH struct {
	mesh *TriangleMesh
	root *meshBVHNode
}

// BuildMeshBVH builds the acceleration structure over all faces of mesh.
func BuildMeshBVH(mesh *TriangleMesh) *MeshBVH {
	all := make([]int, len(mesh.Faces))
	for i := range all {
		all[i] = i
	}
	return &MeshBVH{mesh: mesh, root: buildMeshBVHNode(mesh, all)}
}

func faceBounds(mesh *TriangleMesh, faceIdx int) AABB {
	f := mesh.Faces[faceIdx]
	return NewAABBFromPoints(mesh.Vertices[f[0]], mesh.Vertices[f[1]], mesh.Vertices[f[2]])
}

func buildMeshBVHNode(mesh *TriangleMesh, faceIdxs []int) *meshBVHNode {
	bounds := EmptyAABB()
	for _, fi := range faceIdxs {
		bounds = bounds.Union(faceBounds(mesh, fi))
	}

	if len(faceIdxs) <= meshLeafThreshold {
		return &meshBVHNode{bounds: bounds, faces: faceIdxs}
	}

	axis := bounds.LongestAxis()
	threshold := bounds.Center().Component(axis)

	var left, right []int
	for _, fi := range faceIdxs {
		f := mesh.Faces[fi]
		// A face goes into left if any vertex is below threshold, into
		// right if any vertex is >= threshold; a straddling face lands in
		// both and is duplicated, per spec §4.3.
		inLeft, inRight := false, false
		for _, vi := range f {
			c := mesh.Vertices[vi].Component(axis)
			if c < threshold {
				inLeft = true
			}
			if c >= threshold {
				inRight = true
			}
		}
		if inLeft {
			left = append(left, fi)
		}
		if inRight {
			right = append(right, fi)
		}
	}

	// Degenerate split: abort and keep this node as a leaf rather than
	// looping forever or duplicating the whole face list into one child.
	if len(left) == 0 || len(right) == 0 || len(left) == len(faceIdxs) || len(right) == len(faceIdxs) {
		return &meshBVHNode{bounds: bounds, faces: faceIdxs}
	}

	return &meshBVHNode{
		bounds: bounds,
		left:   buildMeshBVHNode(mesh, left),
		right:  buildMeshBVHNode(mesh, right),
	}
}

// Hit traverses the BVH and returns the closest face hit, if any, with the
// ray's TMax narrowed to the winning distance.
func (b *MeshBVH) Hit(ray *core.Ray) (LocalHit, bool) {
	best := LocalHit{}
	bestFace := -1
	hit := b.hitNode(b.root, ray, &best, &bestFace)
	if !hit {
		return LocalHit{}, false
	}
	f := b.mesh.Faces[bestFace]
	best.N = b.mesh.faceNormalAt(f, best.U, best.V)
	return best, true
}

func (b *MeshBVH) hitNode(node *meshBVHNode, ray *core.Ray, best *LocalHit, bestFace *int) bool {
	if node == nil || !node.bounds.Hit(*ray) {
		return false
	}

	if node.faces != nil {
		hitAny := false
		for _, fi := range node.faces {
			f := b.mesh.Faces[fi]
			t, u, v, ok := IntersectTriangle(ray, b.mesh.Vertices[f[0]], b.mesh.Vertices[f[1]], b.mesh.Vertices[f[2]], false)
			if !ok {
				continue
			}
			ray.TMax = t
			best.T = t
			best.P = ray.At(t)
			best.U = u
			best.V = v
			*bestFace = fi
			hitAny = true
		}
		return hitAny
	}

	hitLeft := b.hitNode(node.left, ray, best, bestFace)
	hitRight := b.hitNode(node.right, ray, best, bestFace)
	return hitLeft || hitRight
}
