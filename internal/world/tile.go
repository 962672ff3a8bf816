// Package world provides dungeon generation, movement geometry and map rendering.
package world

// Marker is a single map cell symbol.
type Marker rune

const (
	// MarkerPlayer is drawn at the player's position.
	MarkerPlayer Marker = 'P'
	// MarkerVisited is drawn for explored rooms.
	MarkerVisited Marker = '.'
	// MarkerUnexplored is drawn for rooms never entered.
	MarkerUnexplored Marker = '#'
)

const (
	// CellSeparator joins cells within a rendered row.
	CellSeparator = " "
	// RowSeparator joins rendered rows.
	RowSeparator = "\n"
)

// Rune returns the marker's display character.
func (m Marker) Rune() rune {
	return rune(m)
}
