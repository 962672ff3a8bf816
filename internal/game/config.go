package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/random"
)

// Option configures a Service.
type Option func(*Service)

// WithTables replaces the embedded game data tables.
func WithTables(tables *gamedata.Tables) Option {
	return func(s *Service) { s.tables = tables }
}

// WithRandom injects the random source every rule rolls with. It must be safe
// for concurrent use unless the service is only driven from one goroutine.
func WithRandom(rng random.Source) Option {
	return func(s *Service) { s.rng = rng }
}

// WithSeed seeds a concurrency-safe random source. A seed of 0 leaves the
// default crypto-seeded source in place.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.rng = random.NewLocked(seed)
		}
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the save identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func defaultID() string {
	return uuid.NewString()
}
