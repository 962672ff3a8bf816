// Package storagetest holds the behavior every Store backend must share.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// NewPlayer returns a valid save with some state in every nested field.
func NewPlayer(t *testing.T, id, name string, level, exp int) entity.Player {
	t.Helper()
	d, err := world.NewDungeon(5)
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	d.MarkVisited(world.Position{X: 1, Y: 0})
	return entity.Player{
		ID:         id,
		Name:       name,
		Level:      level,
		Experience: exp,
		Health:     12,
		MaxHealth:  20,
		Position:   world.Position{X: 1, Y: 0},
		Inventory:  entity.Inventory{"healing_potion": 2, "rusty_sword": 1},
		Equipped:   "rusty_sword",
		Dungeon:    d,
		CreatedAt:  time.Date(2026, time.March, 4, 10, 30, 0, 0, time.UTC),
	}
}

// Run exercises a backend. open must return an empty store.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Run("load missing", func(t *testing.T) {
		s := open(t)
		if _, err := s.Load(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("Load(missing) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		s := open(t)
		want := NewPlayer(t, "save-1", "Ayla", 2, 25)
		want.Monster = &entity.Monster{Kind: "orc", Name: "Orc", HP: 9, MaxHP: 14, Attack: 4, Experience: 14}

		if err := s.Save(context.Background(), want); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := s.Load(context.Background(), "save-1")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if err := Equal(got, want); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("overwrite clears battle", func(t *testing.T) {
		s := open(t)
		p := NewPlayer(t, "save-2", "Bram", 1, 0)
		p.Monster = &entity.Monster{Kind: "goblin", Name: "Goblin", HP: 3, MaxHP: 6, Attack: 2, Experience: 5}
		if err := s.Save(context.Background(), p); err != nil {
			t.Fatalf("Save: %v", err)
		}
		p.Monster = nil
		p.Experience = 5
		if err := s.Save(context.Background(), p); err != nil {
			t.Fatalf("second Save: %v", err)
		}
		got, err := s.Load(context.Background(), "save-2")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got.Monster != nil || got.Experience != 5 {
			t.Fatalf("loaded monster %+v exp %d, want none and 5", got.Monster, got.Experience)
		}
	})

	t.Run("load is independent", func(t *testing.T) {
		s := open(t)
		if err := s.Save(context.Background(), NewPlayer(t, "save-3", "Cato", 1, 0)); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := s.Load(context.Background(), "save-3")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		got.Inventory.Add("gem", 1)
		got.Dungeon.MarkVisited(world.Position{X: 4, Y: 4})
		got.Health = 1

		again, err := s.Load(context.Background(), "save-3")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if again.Inventory.Has("gem") || again.Dungeon.IsVisited(world.Position{X: 4, Y: 4}) || again.Health != 12 {
			t.Fatal("mutating a loaded player changed stored state")
		}
	})

	t.Run("leaderboard order", func(t *testing.T) {
		s := open(t)
		for i, l := range []storage.Leader{
			{Name: "low", Level: 1, Experience: 3},
			{Name: "zed", Level: 3, Experience: 70},
			{Name: "amy", Level: 3, Experience: 70},
			{Name: "top", Level: 4, Experience: 130},
			{Name: "mid", Level: 3, Experience: 90},
		} {
			p := NewPlayer(t, fmt.Sprintf("lb-%d", i), l.Name, l.Level, l.Experience)
			if err := s.Save(context.Background(), p); err != nil {
				t.Fatalf("Save: %v", err)
			}
		}

		got, err := s.Leaderboard(context.Background(), 4)
		if err != nil {
			t.Fatalf("Leaderboard: %v", err)
		}
		want := []string{"top", "mid", "amy", "zed"}
		if len(got) != len(want) {
			t.Fatalf("Leaderboard() returned %d rows, want %d", len(got), len(want))
		}
		for i, name := range want {
			if got[i].Name != name {
				t.Errorf("Leaderboard()[%d] = %q, want %q", i, got[i].Name, name)
			}
		}
	})

	t.Run("concurrent saves", func(t *testing.T) {
		s := open(t)
		players := make([]entity.Player, 8)
		for i := range players {
			players[i] = NewPlayer(t, fmt.Sprintf("c-%d", i), fmt.Sprintf("p%d", i), 1, i)
		}

		var wg sync.WaitGroup
		errs := make(chan error, len(players))
		for _, p := range players {
			wg.Add(1)
			go func(p entity.Player) {
				defer wg.Done()
				errs <- s.Save(context.Background(), p)
			}(p)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("concurrent Save: %v", err)
			}
		}
		for i := range players {
			if _, err := s.Load(context.Background(), fmt.Sprintf("c-%d", i)); err != nil {
				t.Errorf("Load(c-%d): %v", i, err)
			}
		}
	})
}

// Equal reports the first difference between two saves.
func Equal(got, want entity.Player) error {
	switch {
	case got.ID != want.ID, got.Name != want.Name:
		return fmt.Errorf("identity = %s/%s, want %s/%s", got.ID, got.Name, want.ID, want.Name)
	case got.Level != want.Level, got.Experience != want.Experience:
		return fmt.Errorf("progress = %d/%d, want %d/%d", got.Level, got.Experience, want.Level, want.Experience)
	case got.Health != want.Health, got.MaxHealth != want.MaxHealth:
		return fmt.Errorf("health = %d/%d, want %d/%d", got.Health, got.MaxHealth, want.Health, want.MaxHealth)
	case got.Position != want.Position:
		return fmt.Errorf("position = %v, want %v", got.Position, want.Position)
	case got.Equipped != want.Equipped:
		return fmt.Errorf("equipped = %q, want %q", got.Equipped, want.Equipped)
	case !got.CreatedAt.Equal(want.CreatedAt):
		return fmt.Errorf("created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if len(got.Inventory) != len(want.Inventory) {
		return fmt.Errorf("inventory = %v, want %v", got.Inventory, want.Inventory)
	}
	for item, n := range want.Inventory {
		if got.Inventory[item] != n {
			return fmt.Errorf("inventory = %v, want %v", got.Inventory, want.Inventory)
		}
	}
	if (got.Monster == nil) != (want.Monster == nil) {
		return fmt.Errorf("monster = %+v, want %+v", got.Monster, want.Monster)
	}
	if got.Monster != nil && *got.Monster != *want.Monster {
		return fmt.Errorf("monster = %+v, want %+v", *got.Monster, *want.Monster)
	}
	if got.Dungeon == nil || got.Dungeon.Size != want.Dungeon.Size {
		return fmt.Errorf("dungeon = %+v, want size %d", got.Dungeon, want.Dungeon.Size)
	}
	for y := 0; y < want.Dungeon.Size; y++ {
		for x := 0; x < want.Dungeon.Size; x++ {
			pos := world.Position{X: x, Y: y}
			if got.Dungeon.IsVisited(pos) != want.Dungeon.IsVisited(pos) {
				return fmt.Errorf("visited %v = %v, want %v", pos, got.Dungeon.IsVisited(pos), want.Dungeon.IsVisited(pos))
			}
		}
	}
	return nil
}
