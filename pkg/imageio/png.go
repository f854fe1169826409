// Package imageio writes the renderer's output formats: tone-mapped PNG,
// Radiance RGBE HDR, and a raw float dump, plus a WebP preview thumbnail.
package imageio

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/film"
)

// SavePNG writes f's tone-mapped, gamma-corrected image as a 24-bit PNG.
func SavePNG(f *film.Film, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	return png.Encode(file, f.ToPNG())
}
