package scene

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDefaultSceneCameraRayHitsGround(t *testing.T) {
	s := NewDefault(1.0)

	// film(x, y, ...) maps pixel y=0 to the top of the camera-space +y
	// frustum (downward-sloping rays), so a small y aims below the
	// camera's downward-tilted center ray, toward the ground plane.
	ray := s.Camera.GenerateRay(0.5, 0.1, 0, 0)
	isect, hit := s.Intersect(&ray, nil)
	if !hit {
		t.Fatal("expected primary ray toward the bottom of the frustum to hit the ground plane")
	}
	if isect.Mat == nil {
		t.Error("expected a hit material")
	}
}

func TestDefaultSceneSkyEscapeFallsBackToSkylight(t *testing.T) {
	s := NewDefault(1.0)

	// Start in front of the spheres (z=3) so the ray clears the emissive
	// sphere hanging at (0, 3.5, 0).
	ray := core.NewRay(core.NewVec3(0, 1, 3), core.NewVec3(0, 1, 0), 0, 1e9)
	_, hit := s.Intersect(&ray, nil)
	if hit {
		t.Fatal("expected a ray shot straight up with nothing above it to escape the scene")
	}
	l := s.Skylight.Sample(ray.Direction)
	if l.IsBlack() {
		t.Error("expected a non-black skylight contribution for an escaping ray")
	}
}
