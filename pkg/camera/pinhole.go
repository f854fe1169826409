package camera

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Pinhole is an ideal pinhole projection with no depth of field: every ray
// passes through the origin of camera space, per spec §4.5.
type Pinhole struct {
	filmWidth, filmHeight float64
	filmDist              float64
	worldFromCamera       core.Transform
}

// NewPinhole creates a pinhole camera with the given horizontal field of
// view (degrees) and aspect ratio (resx/resy), placed by worldFromCamera
// (typically built with core.LookAt).
func NewPinhole(hfovDegrees, aspectRatio float64, worldFromCamera core.Transform) *Pinhole {
	const filmWidth = 1.0
	hfov := hfovDegrees * math.Pi / 180
	return &Pinhole{
		filmWidth:       filmWidth,
		filmHeight:      filmWidth / aspectRatio,
		filmDist:        (filmWidth / 2) / math.Tan(hfov/2),
		worldFromCamera: worldFromCamera,
	}
}

// GenerateRay maps the unit-square pixel coordinate (x, y) to the film
// plane and returns the corresponding world-space ray. The lens coordinate
// (u, v) is accepted for interface symmetry with ThinLens and ignored.
func (p *Pinhole) GenerateRay(x, y, u, v float64) core.Ray {
	fx, fy := film(x, y, p.filmWidth, p.filmHeight)
	i := core.NewVec3(fx, fy, p.filmDist)
	dir := i.Negate().Normalize()

	origin := p.worldFromCamera.Point(core.Vec3{})
	worldDir := p.worldFromCamera.Vector(dir).Normalize()
	return core.NewRay(origin, worldDir, 0, math.Inf(1))
}
