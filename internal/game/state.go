// Package game is the turn orchestrator: it loads a save, applies one action
// and persists the result.
package game

import "github.com/samdwyer/dungeoncrawl/internal/entity"

// State is the lifecycle state of a player, derived from the save.
type State int

const (
	// StateExploring allows moving between rooms.
	StateExploring State = iota
	// StateInBattle means a monster is attached; only fighting and items apply.
	StateInBattle
	// StateDead waits for a respawn.
	StateDead
)

// StateOf derives the state of p.
func StateOf(p *entity.Player) State {
	switch {
	case p.IsDead():
		return StateDead
	case p.InBattle():
		return StateInBattle
	default:
		return StateExploring
	}
}

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateInBattle:
		return "in_battle"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
