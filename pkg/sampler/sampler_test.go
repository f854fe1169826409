package sampler

import "testing"

func TestStratifiedRejectsNonSquareCount(t *testing.T) {
	s := NewStratified()
	if _, err := s.GenerateSamples(10, 2, 1); err == nil {
		t.Fatal("expected an error for a non-perfect-square sample count")
	}
}

func TestStratifiedProducesOneSamplePerCellPerPixel(t *testing.T) {
	s := NewStratified()
	samples, err := s.GenerateSamples(16, 1, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 16 {
		t.Fatalf("got %d samples, want 16", len(samples))
	}
	seenCell := make(map[[2]int]bool)
	for _, s := range samples {
		v := s.prearranged[0]
		cell := [2]int{int(v.X * 4), int(v.Y * 4)}
		if seenCell[cell] {
			t.Errorf("cell %v covered by more than one sample", cell)
		}
		seenCell[cell] = true
	}
	if len(seenCell) != 16 {
		t.Errorf("covered %d distinct cells, want 16", len(seenCell))
	}
}

func TestRandomDeterministicForSameSeed(t *testing.T) {
	r := NewRandom()
	a, _ := r.GenerateSamples(4, 2, 7)
	b, _ := r.GenerateSamples(4, 2, 7)
	for i := range a {
		for j := range a[i].prearranged {
			if a[i].prearranged[j] != b[i].prearranged[j] {
				t.Fatalf("sample %d dim %d differs across identical seeds", i, j)
			}
		}
	}
}

func TestNext2DFallsBackAfterExhausted(t *testing.T) {
	r := NewRandom()
	samples, _ := r.GenerateSamples(1, 1, 99)
	s := &samples[0]
	first := s.Next2D()
	if first != s.prearranged[0] {
		t.Fatal("expected the first Next2D to return the prearranged sample")
	}
	// Past the budget, Next2D must still return usable values, not panic.
	for i := 0; i < 5; i++ {
		v := s.Next2D()
		if v.X < 0 || v.X >= 1 || v.Y < 0 || v.Y >= 1 {
			t.Errorf("overflow sample out of [0,1): %v", v)
		}
	}
}
