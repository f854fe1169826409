// Package film implements the pixel accumulator and Reinhard tone mapping
// (component J).
package film

import "github.com/df07/go-pathtracer/pkg/core"

// Pixel accumulates a weighted sum of radiance samples. weight tracks the
// effective sample count so the running mean is Sum/Weight.
type Pixel struct {
	Sum    core.Spectrum
	Weight float64
}

// Film is a contiguous 2D accumulator of width x height pixels.
type Film struct {
	Width, Height int
	Pixels        []Pixel
}

// NewFilm creates an empty film of the given resolution.
func NewFilm(width, height int) *Film {
	return &Film{Width: width, Height: height, Pixels: make([]Pixel, width*height)}
}

// AddSample accumulates radiance L at the pixel nearest (x, y), both in
// [0,1], with unit weight. x/y outside [0,1) clamp to the edge pixel.
func (f *Film) AddSample(x, y float64, l core.Spectrum) {
	px := int(x * float64(f.Width))
	if px < 0 {
		px = 0
	} else if px >= f.Width {
		px = f.Width - 1
	}
	py := int(y * float64(f.Height))
	if py < 0 {
		py = 0
	} else if py >= f.Height {
		py = f.Height - 1
	}

	p := &f.Pixels[py*f.Width+px]
	p.Sum = p.Sum.Add(l)
	p.Weight++
}

// At returns the averaged (un-tonemapped) radiance at pixel (x, y).
func (f *Film) At(x, y int) core.Spectrum {
	p := f.Pixels[y*f.Width+x]
	if p.Weight == 0 {
		return core.Spectrum{}
	}
	return p.Sum.Multiply(1 / p.Weight)
}

// Merge adds src's contribution into f, offset by (xofs, yofs), clipping to
// f's bounds. Merge is commutative and associative: it adds Sum and Weight
// componentwise, so calling it in any order over any partition of blocks
// produces the same final film.
func (f *Film) Merge(src *Film, xofs, yofs int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := sy + yofs
		if dy < 0 || dy >= f.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := sx + xofs
			if dx < 0 || dx >= f.Width {
				continue
			}
			s := src.Pixels[sy*src.Width+sx]
			d := &f.Pixels[dy*f.Width+dx]
			d.Sum = d.Sum.Add(s.Sum)
			d.Weight += s.Weight
		}
	}
}
