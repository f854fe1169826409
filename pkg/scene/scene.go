// Package scene implements the top-level Scene container: primitive
// aggregate, camera, and skylight behind a single intersect query
// (component M).
package scene

import (
	"github.com/df07/go-pathtracer/pkg/camera"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/primitive"
	"github.com/df07/go-pathtracer/pkg/skylight"
)

// Scene owns the primitive tree, camera, and skylight for one render. It is
// built once at load time and is read concurrently by every worker without
// locking; nothing may mutate a Scene after rendering starts.
type Scene struct {
	Root     primitive.Primitive
	Camera   camera.Camera
	Skylight skylight.Skylight
}

// New builds a Scene from a pre-built primitive tree, camera, and skylight.
func New(root primitive.Primitive, cam camera.Camera, sky skylight.Skylight) *Scene {
	return &Scene{Root: root, Camera: cam, Skylight: sky}
}

// Intersect tests ray against the scene's primitive tree. prevIsect, if
// non-nil, is the intersection the ray was just scattered from, forwarded
// so primitives can apply the self-intersection policy from spec §4.2
// instead of a fixed ray epsilon.
func (s *Scene) Intersect(ray *core.Ray, prevIsect *primitive.Isect) (primitive.Isect, bool) {
	return s.Root.Intersect(ray, prevIsect)
}
