package entity

import "github.com/samdwyer/dungeoncrawl/internal/gamedata"

// Monster is the transient opponent attached to a player during battle.
type Monster struct {
	Kind       string `json:"kind" yaml:"kind"` // gamedata monster ID
	Name       string `json:"name" yaml:"name"`
	HP         int    `json:"hp" yaml:"hp"`
	MaxHP      int    `json:"max_hp" yaml:"max_hp"`
	Attack     int    `json:"attack" yaml:"attack"`
	Experience int    `json:"exp" yaml:"exp"`
	Boss       bool   `json:"boss,omitempty" yaml:"boss,omitempty"`
}

// NewMonsterFromDef creates a monster from a data-driven definition, scaled
// for a player of the given level. Bosses are never scaled.
func NewMonsterFromDef(def *gamedata.MonsterDef, level int) *Monster {
	hp, attack := def.HP, def.Attack
	if !def.Boss && level > 1 {
		hp += 2 * (level - 1)
		attack += (level - 1) / 2
	}
	return &Monster{
		Kind:       def.ID,
		Name:       def.Name,
		HP:         hp,
		MaxHP:      hp,
		Attack:     attack,
		Experience: def.Experience,
		Boss:       def.Boss,
	}
}

// GetName returns the monster's name.
func (m *Monster) GetName() string { return m.Name }

// IsAlive returns true if the monster has hit points remaining.
func (m *Monster) IsAlive() bool { return m.HP > 0 }

// GetHP returns current hit points.
func (m *Monster) GetHP() int { return m.HP }

// GetMaxHP returns maximum hit points.
func (m *Monster) GetMaxHP() int { return m.MaxHP }

// TakeDamage reduces hit points and returns actual damage taken.
func (m *Monster) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.HP)
	m.HP -= actual
	return actual
}

// Heal restores hit points up to MaxHP.
func (m *Monster) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := max(min(amount, m.MaxHP-m.HP), 0)
	m.HP += actual
	return actual
}
