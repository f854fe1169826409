package camera

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ThinLens models depth of field with a thin-lens approximation: focal
// length, a (negative) focus distance, and an f-number, per spec §4.5.
//
// Open question preserved as specified: the lens coordinate (u, v) is used
// directly as a square-domain sample rather than first mapped to a
// uniform disk, so the aperture is effectively sampled as a square rather
// than a circle.
type ThinLens struct {
	filmWidth, filmHeight float64
	filmDist              float64
	focalLength           float64
	focusDist             float64 // stored negative, per spec
	aperture              float64 // D = f/N
	worldFromCamera       core.Transform
}

// NewThinLens creates a thin-lens camera. focusDist must be negative
// (object-space convention matching the camera looking down -z).
func NewThinLens(hfovDegrees, aspectRatio, focalLength, focusDist, fNumber float64, worldFromCamera core.Transform) *ThinLens {
	const filmWidth = 1.0
	hfov := hfovDegrees * math.Pi / 180
	return &ThinLens{
		filmWidth:       filmWidth,
		filmHeight:      filmWidth / aspectRatio,
		filmDist:        (filmWidth / 2) / math.Tan(hfov/2),
		focalLength:     focalLength,
		focusDist:       focusDist,
		aperture:        focalLength / fNumber,
		worldFromCamera: worldFromCamera,
	}
}

func (c *ThinLens) GenerateRay(x, y, u, v float64) core.Ray {
	fx, fy := film(x, y, c.filmWidth, c.filmHeight)

	f := c.focalLength
	magnification := f / (f - c.focusDist)
	imageDist := -magnification * c.focusDist

	lensP := core.NewVec3(u*c.aperture/2, v*c.aperture/2, 0)
	imageP := core.NewVec3(fx, fy, imageDist)
	objectP := core.NewVec3(imageP.X/magnification, imageP.Y/magnification, c.focusDist)

	dir := objectP.Subtract(lensP).Normalize()

	origin := c.worldFromCamera.Point(lensP)
	worldDir := c.worldFromCamera.Vector(dir).Normalize()
	return core.NewRay(origin, worldDir, 0, math.Inf(1))
}
