// Package storage defines the persistence contract for player saves.
package storage

import (
	"context"
	"errors"
	"sort"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

// ErrNotFound indicates no save exists for the requested identifier.
var ErrNotFound = errors.New("record not found")

// DefaultLeaderboardLimit is the number of leaders reported when no limit
// is given.
const DefaultLeaderboardLimit = 10

// Leader is one leaderboard row.
type Leader struct {
	Name       string `json:"name" yaml:"name"`
	Level      int    `json:"level" yaml:"level"`
	Experience int    `json:"exp" yaml:"exp"`
}

// Store persists player saves. Load returns an independent copy: mutating
// it has no effect until it is passed to Save.
type Store interface {
	Load(ctx context.Context, id string) (entity.Player, error)
	Save(ctx context.Context, player entity.Player) error
	Leaderboard(ctx context.Context, limit int) ([]Leader, error)
	Close() error
}

// SortLeaders orders leaders by level desc, experience desc, then name.
func SortLeaders(leaders []Leader) {
	sort.SliceStable(leaders, func(i, j int) bool {
		a, b := leaders[i], leaders[j]
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		if a.Experience != b.Experience {
			return a.Experience > b.Experience
		}
		return a.Name < b.Name
	})
}

// TopLeaders sorts leaders and truncates them to limit. A non-positive limit
// means DefaultLeaderboardLimit.
func TopLeaders(leaders []Leader, limit int) []Leader {
	SortLeaders(leaders)
	limit = NormalizeLimit(limit)
	if len(leaders) > limit {
		leaders = leaders[:limit]
	}
	return leaders
}

// NormalizeLimit applies the default leaderboard size.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	return limit
}
