package imageio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"github.com/df07/go-pathtracer/pkg/film"
)

// SaveWebPPreview writes f's tone-mapped image as a WebP thumbnail, cheaper
// to ship over a slow link than the equivalent PNG during a long render's
// periodic preview publication.
func SaveWebPPreview(f *film.Film, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create preview dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	return nativewebp.Encode(file, f.ToPNG(), nil)
}
