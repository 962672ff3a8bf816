package world

import (
	"strings"

	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
)

// Direction is one of the four compass moves.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in canonical order.
var Directions = []Direction{North, South, East, West}

// String returns the wire token for the direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Delta returns the coordinate change for one step.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Apply returns the position one step from p.
func (d Direction) Apply(p Position) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// MarshalText encodes the direction as its token.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection maps a case-insensitive token to a Direction.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "north":
		return North, nil
	case "south":
		return South, nil
	case "east":
		return East, nil
	case "west":
		return West, nil
	default:
		return 0, apperrors.InvalidInput("invalid direction %q", token)
	}
}

// DirectionStrings converts directions to their tokens.
func DirectionStrings(dirs []Direction) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = d.String()
	}
	return out
}
