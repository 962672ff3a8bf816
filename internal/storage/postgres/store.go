// Package postgres provides a PostgreSQL-backed player store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	level INTEGER NOT NULL DEFAULT 1,
	exp INTEGER NOT NULL DEFAULT 0,
	health INTEGER NOT NULL,
	max_health INTEGER NOT NULL,
	x INTEGER NOT NULL DEFAULT 0,
	y INTEGER NOT NULL DEFAULT 0,
	inventory JSONB NOT NULL DEFAULT '{}',
	equipped TEXT NOT NULL DEFAULT '',
	in_battle BOOLEAN NOT NULL DEFAULT FALSE,
	monster TEXT NOT NULL DEFAULT '',
	dungeon_size INTEGER NOT NULL,
	visited JSONB NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS players_leaderboard ON players (level DESC, exp DESC, name);
`

// Store persists saves in PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open connects with dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the save for id.
func (s *Store) Load(ctx context.Context, id string) (entity.Player, error) {
	var rec storage.Record
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, level, exp, health, max_health, x, y, inventory, equipped, monster, dungeon_size, visited, created_at
		 FROM players WHERE id = $1`, id,
	).Scan(
		&rec.ID, &rec.Name, &rec.Level, &rec.Experience, &rec.Health, &rec.MaxHealth,
		&rec.X, &rec.Y, &rec.Inventory, &rec.Equipped, &rec.Monster,
		&rec.DungeonSize, &rec.Visited, &rec.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Player{}, storage.ErrNotFound
	}
	if err != nil {
		return entity.Player{}, fmt.Errorf("load player %s: %w", id, err)
	}
	return storage.DecodeRecord(rec)
}

// Save upserts the save.
func (s *Store) Save(ctx context.Context, player entity.Player) error {
	rec, err := storage.EncodeRecord(player)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
	INSERT INTO players (id, name, level, exp, health, max_health, x, y, inventory, equipped, in_battle, monster, dungeon_size, visited, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (id)
	DO UPDATE SET
		name = $2, level = $3, exp = $4, health = $5, max_health = $6,
		x = $7, y = $8, inventory = $9, equipped = $10, in_battle = $11,
		monster = $12, dungeon_size = $13, visited = $14,
		updated_at = NOW()
	`,
		rec.ID, rec.Name, rec.Level, rec.Experience, rec.Health, rec.MaxHealth,
		rec.X, rec.Y, rec.Inventory, rec.Equipped, player.InBattle(),
		rec.Monster, rec.DungeonSize, rec.Visited, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save player %s: %w", rec.ID, err)
	}
	return nil
}

// Leaderboard returns the top players by level then experience.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]storage.Leader, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, level, exp FROM players ORDER BY level DESC, exp DESC, name ASC LIMIT $1`,
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
	return leaders, rows.Err()
}

// Reset removes every save. Tests use it to start from an empty table.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM players`)
	return err
}

var _ storage.Store = (*Store)(nil)
