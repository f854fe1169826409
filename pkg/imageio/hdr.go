package imageio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/film"
)

// SaveHDR writes f's normalized (sum/weight) linear radiance as a Radiance
// RGBE (.hdr) file, row-major bottom-to-top per the Radiance convention. No
// pack dependency implements RGBE, so this is a direct hand-rolled
// transcription of the format.
func SaveHDR(f *film.Film, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y %d +X %d\n", f.Height, f.Width)

	for y := f.Height - 1; y >= 0; y-- {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			r, g, b, e := toRGBE(c)
			w.Write([]byte{r, g, b, e})
		}
	}
	return w.Flush()
}

func toRGBE(c core.Spectrum) (r, g, b, e byte) {
	maxc := math.Max(c.R, math.Max(c.G, c.B))
	if maxc < 1e-32 {
		return 0, 0, 0, 0
	}
	exp := int(math.Floor(math.Log2(maxc))) + 1
	scale := math.Ldexp(1, -exp+8)
	r = clampByte(c.R * scale)
	g = clampByte(c.G * scale)
	b = clampByte(c.B * scale)
	e = byte(exp + 128)
	return
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// LoadHDR reads a Radiance RGBE file back into width/height plus linear RGB
// samples, row-major top-to-bottom (the inverse of SaveHDR's bottom-to-top
// write order).
func LoadHDR(path string) (width, height int, pixels []core.Vec3, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	if err := skipHDRHeader(r); err != nil {
		return 0, 0, nil, err
	}
	height, width, err = readHDRResolution(r)
	if err != nil {
		return 0, 0, nil, err
	}

	rows := make([][]core.Vec3, height)
	for y := height - 1; y >= 0; y-- {
		row := make([]core.Vec3, width)
		for x := 0; x < width; x++ {
			var rgbe [4]byte
			if _, err := io.ReadFull(r, rgbe[:]); err != nil {
				return 0, 0, nil, fmt.Errorf("read pixel (%d,%d): %w", x, y, err)
			}
			row[x] = fromRGBE(rgbe[0], rgbe[1], rgbe[2], rgbe[3])
		}
		rows[y] = row
	}

	pixels = make([]core.Vec3, 0, width*height)
	for _, row := range rows {
		pixels = append(pixels, row...)
	}
	return width, height, pixels, nil
}

func fromRGBE(r, g, b, e byte) core.Vec3 {
	if e == 0 {
		return core.Vec3{}
	}
	scale := math.Ldexp(1, int(e)-128-8)
	return core.NewVec3(float64(r)*scale, float64(g)*scale, float64(b)*scale)
}

func skipHDRHeader(r *bufio.Reader) error {
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read hdr header: %w", err)
		}
		if line == "\n" {
			return nil
		}
	}
}

func readHDRResolution(r *bufio.Reader) (height, width int, err error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("read hdr resolution line: %w", err)
	}
	if _, err := fmt.Sscanf(line, "-Y %d +X %d", &height, &width); err != nil {
		return 0, 0, fmt.Errorf("parse hdr resolution %q: %w", line, err)
	}
	return height, width, nil
}
