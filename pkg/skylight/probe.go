package skylight

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// Probe is a Debevec-style angular-map environment probe: a single square
// image where a direction maps to a pixel via a fisheye-like projection.
type Probe struct {
	img *loaders.ImageData
}

// NewProbe loads the angular-map image at path.
func NewProbe(path string) (*Probe, error) {
	img, err := loaders.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &Probe{img: img}, nil
}

func (p *Probe) Sample(dir core.Vec3) core.Spectrum {
	dx, dy, dz := dir.X, dir.Y, dir.Z

	denom := math.Sqrt(dx*dx + dy*dy)
	var u, v float64
	if denom < 1e-12 {
		u, v = 0, 0
	} else {
		r := (1 / math.Pi) * math.Acos(clampUnit(dz)) / denom
		u = dx * r
		v = -dy * r
	}

	px := int((u*0.5 + 0.5) * float64(p.img.Width))
	py := int((v*0.5 + 0.5) * float64(p.img.Height))
	c := p.img.At(px, py)
	return core.SpectrumFromVec3(c)
}
