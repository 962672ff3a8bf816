// Package memory provides an in-process Store, used by tests and the
// terminal client when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
)

// Store keeps deep copies of saves in a map.
type Store struct {
	mu      sync.RWMutex
	players map[string]*entity.Player
}

// New returns an empty store.
func New() *Store {
	return &Store{players: make(map[string]*entity.Player)}
}

// Load returns a copy of the save for id.
func (s *Store) Load(ctx context.Context, id string) (entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return entity.Player{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return entity.Player{}, storage.ErrNotFound
	}
	return *p.Clone(), nil
}

// Save stores a copy of player.
func (s *Store) Save(ctx context.Context, player entity.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if player.ID == "" {
		return fmt.Errorf("player id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[player.ID] = player.Clone()
	return nil
}

// Leaderboard returns the top players.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]storage.Leader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	leaders := make([]storage.Leader, 0, len(s.players))
	for _, p := range s.players {
		leaders = append(leaders, storage.Leader{Name: p.Name, Level: p.Level, Experience: p.Experience})
	}
	s.mu.RUnlock()

	return storage.TopLeaders(leaders, limit), nil
}

// Len returns the number of saves.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ storage.Store = (*Store)(nil)
