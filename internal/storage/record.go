package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Record is the flat row form of a player used by the SQL backends. Nested
// structures are carried as JSON text.
type Record struct {
	ID          string
	Name        string
	Level       int
	Experience  int
	Health      int
	MaxHealth   int
	X           int
	Y           int
	Inventory   string
	Equipped    string
	Monster     string // empty when not in battle
	DungeonSize int
	Visited     string
	CreatedAt   time.Time
}

// EncodeRecord flattens a player into a Record.
func EncodeRecord(p entity.Player) (Record, error) {
	if p.Dungeon == nil {
		return Record{}, fmt.Errorf("player %s has no dungeon", p.ID)
	}
	inventory := p.Inventory
	if inventory == nil {
		inventory = entity.Inventory{}
	}
	invJSON, err := json.Marshal(inventory)
	if err != nil {
		return Record{}, fmt.Errorf("marshal inventory: %w", err)
	}
	visitedJSON, err := json.Marshal(p.Dungeon.Visited)
	if err != nil {
		return Record{}, fmt.Errorf("marshal visited: %w", err)
	}
	monsterJSON := ""
	if p.Monster != nil {
		data, err := json.Marshal(p.Monster)
		if err != nil {
			return Record{}, fmt.Errorf("marshal monster: %w", err)
		}
		monsterJSON = string(data)
	}

	return Record{
		ID:          p.ID,
		Name:        p.Name,
		Level:       p.Level,
		Experience:  p.Experience,
		Health:      p.Health,
		MaxHealth:   p.MaxHealth,
		X:           p.Position.X,
		Y:           p.Position.Y,
		Inventory:   string(invJSON),
		Equipped:    p.Equipped,
		Monster:     monsterJSON,
		DungeonSize: p.Dungeon.Size,
		Visited:     string(visitedJSON),
		CreatedAt:   p.CreatedAt.UTC(),
	}, nil
}

// DecodeRecord rebuilds a player from a Record.
func DecodeRecord(r Record) (entity.Player, error) {
	p := entity.Player{
		ID:         r.ID,
		Name:       r.Name,
		Level:      r.Level,
		Experience: r.Experience,
		Health:     r.Health,
		MaxHealth:  r.MaxHealth,
		Position:   world.Position{X: r.X, Y: r.Y},
		Inventory:  entity.Inventory{},
		Equipped:  r.Equipped,
		CreatedAt: r.CreatedAt.UTC(),
	}
	if r.Inventory != "" {
		if err := json.Unmarshal([]byte(r.Inventory), &p.Inventory); err != nil {
			return entity.Player{}, fmt.Errorf("unmarshal inventory: %w", err)
		}
		if p.Inventory == nil {
			p.Inventory = entity.Inventory{}
		}
	}
	dungeon := &world.Dungeon{Size: r.DungeonSize}
	if err := json.Unmarshal([]byte(r.Visited), &dungeon.Visited); err != nil {
		return entity.Player{}, fmt.Errorf("unmarshal visited: %w", err)
	}
	p.Dungeon = dungeon
	if r.Monster != "" {
		var m entity.Monster
		if err := json.Unmarshal([]byte(r.Monster), &m); err != nil {
			return entity.Player{}, fmt.Errorf("unmarshal monster: %w", err)
		}
		p.Monster = &m
	}
	return p, nil
}
