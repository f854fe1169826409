package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// LoadGLTFMesh reads the first mesh primitive of a glTF/GLB document into a
// TriangleMesh, an alternative mesh source feeding the same
// geometry.NewTriangleMesh constructor as LoadPLYMesh.
func LoadGLTFMesh(path string) (*geometry.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("%s: no mesh primitives", path)
	}
	prim := doc.Meshes[0].Primitives[0]

	posAccessor, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("%s: primitive has no POSITION attribute", path)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
	if err != nil {
		return nil, fmt.Errorf("%s: read positions: %w", path, err)
	}

	if prim.Indices == nil {
		return nil, fmt.Errorf("%s: primitive has no index buffer", path)
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, fmt.Errorf("%s: read indices: %w", path, err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%s: index count %d is not a multiple of 3", path, len(indices))
	}

	vertices := make([]core.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	faces := make([]geometry.Face, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		faces = append(faces, geometry.Face{int(indices[i]), int(indices[i+1]), int(indices[i+2])})
	}

	mesh := geometry.NewTriangleMesh(vertices, faces, true)
	mesh.ComputeSmoothNormals()
	return mesh, nil
}
