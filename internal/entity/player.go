// Package entity provides the player, monster and inventory value types.
package entity

import (
	"time"

	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// Player is one save: everything a turn reads and writes.
type Player struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Level      int            `json:"level" yaml:"level"`
	Experience int            `json:"exp" yaml:"exp"`
	Health     int            `json:"health" yaml:"health"`
	MaxHealth  int            `json:"max_health" yaml:"max_health"`
	Position   world.Position `json:"position" yaml:"position"`
	Inventory  Inventory      `json:"inventory" yaml:"inventory"`
	Equipped   string         `json:"equipped,omitempty" yaml:"equipped,omitempty"`
	Monster    *Monster       `json:"monster,omitempty" yaml:"monster,omitempty"`
	Dungeon    *world.Dungeon `json:"dungeon" yaml:"dungeon"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
}

// InBattle reports whether a monster is attached.
func (p *Player) InBattle() bool { return p.Monster != nil }

// IsDead reports whether the player is awaiting respawn.
func (p *Player) IsDead() bool { return p.Health <= 0 }

// GetName returns the player's name.
func (p *Player) GetName() string { return p.Name }

// IsAlive returns true if the player has health remaining.
func (p *Player) IsAlive() bool { return p.Health > 0 }

// GetHP returns current health.
func (p *Player) GetHP() int { return p.Health }

// GetMaxHP returns maximum health.
func (p *Player) GetMaxHP() int { return p.MaxHealth }

// TakeDamage reduces health, floored at 0, and returns actual damage taken.
// Reaching 0 ends any battle.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.Health)
	p.Health -= actual
	if p.Health == 0 {
		p.Monster = nil
	}
	return actual
}

// Heal restores health, capped at MaxHealth, and returns the amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.MaxHealth-p.Health)
	if actual < 0 {
		actual = 0
	}
	p.Health += actual
	return actual
}

// Clone returns a deep copy so a turn can be applied without touching the
// loaded value until it is saved.
func (p *Player) Clone() *Player {
	c := *p
	c.Inventory = p.Inventory.Clone()
	c.Dungeon = p.Dungeon.Clone()
	if p.Monster != nil {
		m := *p.Monster
		c.Monster = &m
	}
	return &c
}

// Validate checks the invariants every persisted player must satisfy.
func (p *Player) Validate() error {
	switch {
	case p.ID == "":
		return apperrors.InvalidInput("player id is required")
	case p.Level < 1:
		return apperrors.InvalidInput("level must be at least 1, got %d", p.Level)
	case p.Experience < 0:
		return apperrors.InvalidInput("experience must be non-negative, got %d", p.Experience)
	case p.MaxHealth <= 0:
		return apperrors.InvalidInput("max health must be positive, got %d", p.MaxHealth)
	case p.Health < 0 || p.Health > p.MaxHealth:
		return apperrors.InvalidInput("health %d outside 0..%d", p.Health, p.MaxHealth)
	case p.Dungeon == nil:
		return apperrors.InvalidInput("dungeon is required")
	}
	if err := p.Dungeon.Validate(); err != nil {
		return err
	}
	if !p.Dungeon.InBounds(p.Position) {
		return apperrors.InvalidInput("position %v outside dungeon of size %d", p.Position, p.Dungeon.Size)
	}
	if p.Equipped != "" && !p.Inventory.Has(p.Equipped) {
		return apperrors.InvalidInput("equipped item %q not in inventory", p.Equipped)
	}
	if p.Monster != nil {
		if p.Health == 0 {
			return apperrors.InvalidInput("dead player cannot be in battle")
		}
		if p.Monster.HP <= 0 {
			return apperrors.InvalidInput("attached monster has no hit points")
		}
	}
	return nil
}
