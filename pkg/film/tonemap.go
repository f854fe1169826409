package film

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

const (
	reinhardDelta = 1e-5
	reinhardKey   = 0.18
	gamma         = 2.2
)

// ToneMapped returns the Reinhard-tonemapped, gamma-corrected radiance at
// every pixel, computed per channel independently per spec §4.7.
func (f *Film) ToneMapped() []core.Spectrum {
	logAvgR, maxR := logAverageAndMax(f, func(s core.Spectrum) float64 { return s.R })
	logAvgG, maxG := logAverageAndMax(f, func(s core.Spectrum) float64 { return s.G })
	logAvgB, maxB := logAverageAndMax(f, func(s core.Spectrum) float64 { return s.B })

	out := make([]core.Spectrum, len(f.Pixels))
	for i := range f.Pixels {
		if f.Pixels[i].Weight == 0 {
			continue
		}
		raw := f.Pixels[i].Sum.Multiply(1 / f.Pixels[i].Weight)
		out[i] = core.NewSpectrum(
			reinhard(raw.R, logAvgR, maxR),
			reinhard(raw.G, logAvgG, maxG),
			reinhard(raw.B, logAvgB, maxB),
		).GammaCorrect(gamma)
	}
	return out
}

func logAverageAndMax(f *Film, channel func(core.Spectrum) float64) (logAvg, maxVal float64) {
	var sumLog float64
	n := 0
	for i := range f.Pixels {
		if f.Pixels[i].Weight == 0 {
			continue
		}
		v := channel(f.Pixels[i].Sum.Multiply(1 / f.Pixels[i].Weight))
		sumLog += math.Log(reinhardDelta + v)
		maxVal = math.Max(maxVal, v)
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return math.Exp(sumLog / float64(n)), maxVal
}

func reinhard(li, logAvg, lWhite float64) float64 {
	if logAvg == 0 {
		return 0
	}
	l := reinhardKey / logAvg * li
	if lWhite == 0 {
		return 0
	}
	return l * (1 + l/(lWhite*lWhite)) / (1 + l)
}

// ToPNG renders the tone-mapped result as a standard library image.Image,
// clamping each gamma-corrected channel to [0,255].
func (f *Film) ToPNG() image.Image {
	tonemapped := f.ToneMapped()
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			s := tonemapped[y*f.Width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: to8(s.R),
				G: to8(s.G),
				B: to8(s.B),
				A: 255,
			})
		}
	}
	return img
}

func to8(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}
