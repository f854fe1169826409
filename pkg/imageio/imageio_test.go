package imageio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/film"
)

func testFilm() *film.Film {
	f := film.NewFilm(2, 2)
	f.AddSample(0.25, 0.25, core.NewSpectrum(1, 0.5, 0.25))
	f.AddSample(0.75, 0.75, core.NewSpectrum(2, 4, 8))
	return f
}

func TestSavePNGProducesReadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := SavePNG(testFilm(), path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty PNG file, err=%v", err)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.float")
	f := testFilm()
	if err := SaveFloat(f, path); err != nil {
		t.Fatalf("SaveFloat: %v", err)
	}

	w, h, pixels, err := LoadFloat(path)
	if err != nil {
		t.Fatalf("LoadFloat: %v", err)
	}
	if w != 2 || h != 2 {
		t.Fatalf("got %dx%d, want 2x2", w, h)
	}

	want := f.At(0, 0)
	got := pixels[0:3]
	if float64(got[0]) != want.R || float64(got[1]) != want.G || float64(got[2]) != want.B {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}
}

func TestHDRRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.hdr")
	f := testFilm()
	if err := SaveHDR(f, path); err != nil {
		t.Fatalf("SaveHDR: %v", err)
	}

	w, h, pixels, err := LoadHDR(path)
	if err != nil {
		t.Fatalf("LoadHDR: %v", err)
	}
	if w != 2 || h != 2 {
		t.Fatalf("got %dx%d, want 2x2", w, h)
	}

	// RGBE is lossy (8-bit mantissa); expect a close, not exact, match.
	want := f.At(0, 0)
	c := pixels[0]
	if c.X < want.R*0.9 || c.X > want.R*1.1 {
		t.Errorf("pixel (0,0).R = %v, want ~%v", c.X, want.R)
	}
}
