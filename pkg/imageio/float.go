package imageio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/pkg/film"
)

// SaveFloat writes f's normalized radiance as the raw binary dump: int32
// xres, int32 yres, then xres*yres float32 RGB triples, row-major
// top-to-bottom, little-endian — no pack library covers this; it is a
// direct transcription of the exact layout required by §6.
func SaveFloat(f *film.Film, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := binary.Write(w, binary.LittleEndian, int32(f.Width)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int32(f.Height)); err != nil {
		return err
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			for _, v := range [3]float64{c.R, c.G, c.B} {
				if err := binary.Write(w, binary.LittleEndian, float32(v)); err != nil {
					return err
				}
			}
		}
	}
	return w.Flush()
}

// LoadFloat is the inverse of SaveFloat, used by tests to round-trip the
// dump format.
func LoadFloat(path string) (width, height int, pixels []float32, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	var w32, h32 int32
	if err := binary.Read(r, binary.LittleEndian, &w32); err != nil {
		return 0, 0, nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &h32); err != nil {
		return 0, 0, nil, err
	}
	width, height = int(w32), int(h32)

	pixels = make([]float32, width*height*3)
	for i := range pixels {
		if err := binary.Read(r, binary.LittleEndian, &pixels[i]); err != nil {
			return 0, 0, nil, fmt.Errorf("read float %d: %w", i, err)
		}
	}
	return width, height, pixels, nil
}
