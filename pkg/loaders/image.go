// Package loaders implements mesh and image loading (ambient I/O
// collaborators that feed the core renderer).
package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageData is a decoded image as linear-ish [0,1] floating point samples,
// row-major, top-to-bottom.
type ImageData struct {
	Width, Height int
	Pixels        []core.Vec3
}

// At returns the pixel at (x, y), clamped to the image edges.
func (d *ImageData) At(x, y int) core.Vec3 {
	if x < 0 {
		x = 0
	} else if x >= d.Width {
		x = d.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= d.Height {
		y = d.Height - 1
	}
	return d.Pixels[y*d.Width+x]
}

// LoadImage decodes a PNG, JPEG, or TGA file into an ImageData.
func LoadImage(path string) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fromImage(img), nil
}

// LoadImageResized decodes path and resamples it to exactly width x height
// using a high quality bilinear scaler, for callers that need a fixed
// working resolution regardless of the source image's native size.
func LoadImageResized(path string, width, height int) (*ImageData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	dst := image.NewRGBA64(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return fromImage(dst), nil
}

func fromImage(img image.Image) *ImageData {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &ImageData{Width: w, Height: h, Pixels: make([]core.Vec3, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Pixels[y*w+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(bl)/65535.0,
			)
		}
	}
	return out
}
