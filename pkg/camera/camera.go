// Package camera implements the renderer's ray-generation models: a
// pinhole projection and a thin-lens model with depth of field.
package camera

import "github.com/df07/go-pathtracer/pkg/core"

// Camera generates a world-space ray for a unit-square pixel coordinate
// (x, y) and a unit-square lens coordinate (u, v).
type Camera interface {
	GenerateRay(x, y, u, v float64) core.Ray
}

// film maps (x, y) in [0,1]x[0,1] to camera-space film-plane coordinates in
// [-w/2, w/2] x [-h/2, h/2], shared by Pinhole and ThinLens.
func film(x, y, width, height float64) (fx, fy float64) {
	return (x - 0.5) * width, (0.5 - y) * height
}
