// Package random provides the injectable random source used by every game
// rule that rolls dice, plus seed generation helpers.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Source is the subset of *rand.Rand the rules depend on.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Locked is a Source safe for concurrent use by independent saves.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocked returns a concurrency-safe source seeded with seed.
func NewLocked(seed int64) *Locked {
	return &Locked{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

// Between returns a value in [min, max] inclusive. If max < min it returns min.
func Between(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// Chance reports whether a roll in [0,1) falls under p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
