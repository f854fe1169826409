package executor

import (
	"sync"
	"testing"

	"github.com/df07/go-pathtracer/pkg/film"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestBlockGridCoversWholeImageWithoutOverlap(t *testing.T) {
	blocks := NewBlockGrid(10, 7, 4, 1, SamplerRandom)
	covered := make([][]bool, 7)
	for i := range covered {
		covered[i] = make([]bool, 10)
	}
	for _, b := range blocks {
		for y := b.Yofs; y < b.Yofs+b.Height; y++ {
			for x := b.Xofs; x < b.Xofs+b.Width; x++ {
				if covered[y][x] {
					t.Fatalf("pixel (%d,%d) covered by more than one block", x, y)
				}
				covered[y][x] = true
			}
		}
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			if !covered[y][x] {
				t.Fatalf("pixel (%d,%d) not covered by any block", x, y)
			}
		}
	}
}

func TestJobRendersAllBlocksAndMerges(t *testing.T) {
	s := scene.NewDefault(float64(16) / float64(16))
	var mu sync.Mutex
	completed := 0

	job := NewJob(s, 16, 16, 2, func(b *Block) {
		mu.Lock()
		completed++
		mu.Unlock()
	})

	blocks := NewBlockGrid(16, 16, 8, 2, SamplerRandom)
	job.Submit(blocks)

	f, anomalies, err := job.Finish()
	if err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}
	if anomalies < 0 {
		t.Errorf("anomalies = %d, want >= 0", anomalies)
	}
	if completed != len(blocks) {
		t.Errorf("onBlock fired %d times, want %d", completed, len(blocks))
	}
	if f.Width != 16 || f.Height != 16 {
		t.Errorf("unexpected film size %dx%d", f.Width, f.Height)
	}
}

func TestPixelSeedDeterministicAcrossCalls(t *testing.T) {
	a := pixelSeed(3, 5)
	b := pixelSeed(3, 5)
	if a != b {
		t.Errorf("pixelSeed not deterministic: %d vs %d", a, b)
	}
	c := pixelSeed(3, 6)
	if a == c {
		t.Errorf("pixelSeed collided across different pixel coordinates")
	}
}

func TestRenderIsInvariantToBlockSize(t *testing.T) {
	s := scene.NewDefault(float64(12) / float64(8))

	render := func(edgeLength int) *film.Film {
		job := NewJob(s, 12, 8, 1, nil)
		job.Submit(NewBlockGrid(12, 8, edgeLength, 2, SamplerRandom))
		f, _, err := job.Finish()
		if err != nil {
			t.Fatalf("Finish: %v", err)
		}
		return f
	}

	a := render(4)
	b := render(16)

	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			ca := a.At(x, y)
			cb := b.At(x, y)
			if ca != cb {
				t.Fatalf("pixel (%d,%d) differs between block sizes 4 and 16: %v vs %v", x, y, ca, cb)
			}
		}
	}
}
