package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// LoadPLYMesh reads an ASCII PLY file (vertex positions plus triangular
// faces only - no normals/color/texcoord properties) into a TriangleMesh
// with computed smooth normals.
func LoadPLYMesh(path string) (*geometry.TriangleMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1<<20), 1<<20)

	vertexCount, faceCount, err := readPLYHeader(sc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	vertices := make([]core.Vec3, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%s: truncated vertex list at %d/%d", path, i, vertexCount)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s: malformed vertex line %q", path, sc.Text())
		}
		x, err1 := strconv.ParseFloat(fields[0], 64)
		y, err2 := strconv.ParseFloat(fields[1], 64)
		z, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("%s: malformed vertex line %q", path, sc.Text())
		}
		vertices = append(vertices, core.NewVec3(x, y, z))
	}

	faces := make([]geometry.Face, 0, faceCount)
	for i := 0; i < faceCount; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%s: truncated face list at %d/%d", path, i, faceCount)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] != "3" {
			return nil, fmt.Errorf("%s: only triangular faces are supported, got %q", path, sc.Text())
		}
		a, err1 := strconv.Atoi(fields[1])
		b, err2 := strconv.Atoi(fields[2])
		c, err3 := strconv.Atoi(fields[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("%s: malformed face line %q", path, sc.Text())
		}
		faces = append(faces, geometry.Face{a, b, c})
	}

	mesh := geometry.NewTriangleMesh(vertices, faces, true)
	mesh.ComputeSmoothNormals()
	return mesh, nil
}

func readPLYHeader(sc *bufio.Scanner) (vertexCount, faceCount int, err error) {
	if !sc.Scan() || sc.Text() != "ply" {
		return 0, 0, fmt.Errorf("missing 'ply' magic")
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "end_header":
			if vertexCount == 0 && faceCount == 0 {
				return 0, 0, fmt.Errorf("header declared no vertices or faces")
			}
			return vertexCount, faceCount, nil
		case strings.HasPrefix(line, "element vertex"):
			vertexCount, err = strconv.Atoi(strings.Fields(line)[2])
			if err != nil {
				return 0, 0, fmt.Errorf("parse vertex count: %w", err)
			}
		case strings.HasPrefix(line, "element face"):
			faceCount, err = strconv.Atoi(strings.Fields(line)[2])
			if err != nil {
				return 0, 0, fmt.Errorf("parse face count: %w", err)
			}
		}
	}
	return 0, 0, fmt.Errorf("truncated header")
}
