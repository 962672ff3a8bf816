package random

import (
	"sync"
	"testing"
)

func TestBetweenStaysInRange(t *testing.T) {
	src := NewLocked(42)
	for i := 0; i < 1000; i++ {
		v := Between(src, 3, 6)
		if v < 3 || v > 6 {
			t.Fatalf("Between(3, 6) = %d, out of range", v)
		}
	}
	if got := Between(src, 5, 5); got != 5 {
		t.Errorf("Between(5, 5) = %d, want 5", got)
	}
	if got := Between(src, 7, 2); got != 7 {
		t.Errorf("Between(7, 2) = %d, want 7", got)
	}
}

func TestLockedReproducible(t *testing.T) {
	a := NewLocked(12345)
	b := NewLocked(12345)
	for i := 0; i < 20; i++ {
		if x, y := a.Intn(100), b.Intn(100); x != y {
			t.Fatalf("draw %d mismatch: %d != %d", i, x, y)
		}
	}
}

func TestLockedConcurrentUse(t *testing.T) {
	src := NewLocked(1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = src.Intn(10)
				_ = src.Float64()
			}
		}()
	}
	wg.Wait()
}

func TestScript(t *testing.T) {
	s := &Script{Ints: []int{2, 9, -1}, Floats: []float64{0.25}}

	if got := s.Intn(4); got != 2 {
		t.Errorf("Intn(4) = %d, want 2", got)
	}
	if got := s.Intn(4); got != 3 {
		t.Errorf("Intn(4) clamped = %d, want 3", got)
	}
	if got := s.Intn(4); got != 0 {
		t.Errorf("Intn(4) negative = %d, want 0", got)
	}
	if got := s.Intn(4); got != 0 {
		t.Errorf("Intn(4) exhausted = %d, want 0", got)
	}
	if got := s.Float64(); got != 0.25 {
		t.Errorf("Float64() = %v, want 0.25", got)
	}
	if !Chance(&Script{Floats: []float64{0.1}}, 0.6) {
		t.Error("Chance(0.1 < 0.6) should succeed")
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
}
