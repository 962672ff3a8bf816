// Package sqlite provides a SQLite-backed player store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/storage/sqlite/migrations"
	"github.com/samdwyer/dungeoncrawl/internal/storage/sqlitemigrate"
)

const playerColumns = `id, name, level, exp, health, max_health, x, y, inventory, equipped, monster, dungeon_size, visited, created_at`

// Store persists saves in a SQLite database.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads the save for id.
func (s *Store) Load(ctx context.Context, id string) (entity.Player, error) {
	if err := ctx.Err(); err != nil {
		return entity.Player{}, err
	}

	var (
		rec       storage.Record
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id).Scan(
		&rec.ID, &rec.Name, &rec.Level, &rec.Experience, &rec.Health, &rec.MaxHealth,
		&rec.X, &rec.Y, &rec.Inventory, &rec.Equipped, &rec.Monster,
		&rec.DungeonSize, &rec.Visited, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Player{}, storage.ErrNotFound
	}
	if err != nil {
		return entity.Player{}, fmt.Errorf("load player %s: %w", id, err)
	}
	rec.CreatedAt = fromMillis(createdAt)

	return storage.DecodeRecord(rec)
}

// Save inserts or replaces the save.
func (s *Store) Save(ctx context.Context, player entity.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rec, err := storage.EncodeRecord(player)
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO players (
		   id, name, level, exp, health, max_health, x, y,
		   inventory, equipped, in_battle, monster, dungeon_size, visited,
		   created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   level = excluded.level,
		   exp = excluded.exp,
		   health = excluded.health,
		   max_health = excluded.max_health,
		   x = excluded.x,
		   y = excluded.y,
		   inventory = excluded.inventory,
		   equipped = excluded.equipped,
		   in_battle = excluded.in_battle,
		   monster = excluded.monster,
		   dungeon_size = excluded.dungeon_size,
		   visited = excluded.visited,
		   updated_at = excluded.updated_at`,
		rec.ID, rec.Name, rec.Level, rec.Experience, rec.Health, rec.MaxHealth, rec.X, rec.Y,
		rec.Inventory, rec.Equipped, player.InBattle(), rec.Monster, rec.DungeonSize, rec.Visited,
		toMillis(rec.CreatedAt), toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save player %s: %w", rec.ID, err)
	}
	return nil
}

// Leaderboard returns the top players by level then experience.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]storage.Leader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, level, exp FROM players ORDER BY level DESC, exp DESC, name ASC LIMIT ?`,
		storage.NormalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	leaders := make([]storage.Leader, 0)
	for rows.Next() {
		var l storage.Leader
		if err := rows.Scan(&l.Name, &l.Level, &l.Experience); err != nil {
			return nil, fmt.Errorf("scan leader: %w", err)
		}
		leaders = append(leaders, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard: %w", err)
	}
	return leaders, nil
}

var _ storage.Store = (*Store)(nil)
