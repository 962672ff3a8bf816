package random

// Script is a deterministic Source that replays queued values. Intn values are
// clamped into [0,n); an exhausted queue yields 0.
type Script struct {
	Ints   []int
	Floats []float64
}

// Intn returns the next queued integer.
func (s *Script) Intn(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Float64 returns the next queued float.
func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}
