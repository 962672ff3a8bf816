// Package yamlstore keeps each save as a YAML file in a directory.
package yamlstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
)

const ext = ".yaml"

// Store reads and writes <dir>/<id>.yaml.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// Open creates dir if needed and returns a store over it.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("save directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

func (s *Store) path(id string) (string, bool) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", false
	}
	return filepath.Join(s.dir, id+ext), true
}

// Load reads the save for id.
func (s *Store) Load(ctx context.Context, id string) (entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return entity.Player{}, err
	}
	path, ok := s.path(id)
	if !ok {
		return entity.Player{}, storage.ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return readPlayer(path)
}

func readPlayer(path string) (entity.Player, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.Player{}, storage.ErrNotFound
	}
	if err != nil {
		return entity.Player{}, fmt.Errorf("read save: %w", err)
	}

	var p entity.Player
	if err := yaml.Unmarshal(data, &p); err != nil {
		return entity.Player{}, fmt.Errorf("decode save %s: %w", filepath.Base(path), err)
	}
	if p.Inventory == nil {
		p.Inventory = entity.Inventory{}
	}
	return p, nil
}

// Save writes the save to a temp file and renames it into place.
func (s *Store) Save(ctx context.Context, player entity.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, ok := s.path(player.ID)
	if !ok {
		return fmt.Errorf("invalid player id %q", player.ID)
	}
	data, err := yaml.Marshal(&player)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// Leaderboard scans every save in the directory.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]storage.Leader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read save directory: %w", err)
	}
	leaders := make([]storage.Leader, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) || strings.HasPrefix(name, ".") {
			continue
		}
		p, err := readPlayer(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		leaders = append(leaders, storage.Leader{Name: p.Name, Level: p.Level, Experience: p.Experience})
	}
	return storage.TopLeaders(leaders, limit), nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

var _ storage.Store = (*Store)(nil)
