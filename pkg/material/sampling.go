package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// uniformSampleHemisphere maps a unit-square sample to a direction uniform
// over the hemisphere z>=0, with pdf = 1/(2*pi).
func uniformSampleHemisphere(u core.Vec2) core.Vec3 {
	z := u.X
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	return core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

const uniformHemispherePDF = 1 / (2 * math.Pi)
