package world

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/random"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// Supported dungeon side lengths.
	MinSize = 2
	MaxSize = 16

	// Range a size is drawn from when none is requested.
	DefaultMinSize = 4
	DefaultMaxSize = 6
)

// Position is a cell coordinate; y grows southward.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Entrance is where every player starts and respawns.
var Entrance = Position{X: 0, Y: 0}

// Dungeon is a square grid of rooms plus the owning player's visited overlay.
// Rooms carry no content; events are decided when a room is entered.
type Dungeon struct {
	Size    int      `json:"size" yaml:"size"`
	Visited [][]bool `json:"visited" yaml:"visited"`
}

// NewDungeon creates a dungeon of the given side with only the entrance visited.
func NewDungeon(size int) (*Dungeon, error) {
	if size < MinSize || size > MaxSize {
		return nil, apperrors.InvalidInput("dungeon size must be between %d and %d, got %d", MinSize, MaxSize, size)
	}

	visited := make([][]bool, size)
	for y := range visited {
		visited[y] = make([]bool, size)
	}
	visited[Entrance.Y][Entrance.X] = true

	return &Dungeon{Size: size, Visited: visited}, nil
}

// Generate creates a dungeon with the requested size, or a size drawn
// uniformly from DefaultMinSize..DefaultMaxSize when requested is nil.
func Generate(ctx context.Context, rng random.Source, requested *int) (*Dungeon, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.generate")
	defer span.End()

	size := 0
	if requested != nil {
		size = *requested
	} else {
		size = random.Between(rng, DefaultMinSize, DefaultMaxSize)
	}

	d, err := NewDungeon(size)
	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("dungeon.size", d.Size),
		attribute.Bool("dungeon.size_requested", requested != nil),
	)
	return d, nil
}

// InBounds reports whether p lies within [0,Size) on both axes.
func (d *Dungeon) InBounds(p Position) bool {
	return p.X >= 0 && p.X < d.Size && p.Y >= 0 && p.Y < d.Size
}

// BossCell returns the far corner that hosts the boss encounter.
func (d *Dungeon) BossCell() Position {
	return Position{X: d.Size - 1, Y: d.Size - 1}
}

// IsBossCell reports whether p is the boss cell.
func (d *Dungeon) IsBossCell(p Position) bool {
	return p == d.BossCell()
}

// MarkVisited records that the player has entered p.
func (d *Dungeon) MarkVisited(p Position) {
	if d.InBounds(p) {
		d.Visited[p.Y][p.X] = true
	}
}

// IsVisited reports whether the player has entered p.
func (d *Dungeon) IsVisited(p Position) bool {
	return d.InBounds(p) && d.Visited[p.Y][p.X]
}

// VisitedCount returns how many rooms have been explored.
func (d *Dungeon) VisitedCount() int {
	count := 0
	for _, row := range d.Visited {
		for _, v := range row {
			if v {
				count++
			}
		}
	}
	return count
}

// AvailableMoves returns, in canonical order, every direction whose target
// from p is in bounds.
func (d *Dungeon) AvailableMoves(p Position) []Direction {
	moves := make([]Direction, 0, len(Directions))
	for _, dir := range Directions {
		if d.InBounds(dir.Apply(p)) {
			moves = append(moves, dir)
		}
	}
	return moves
}

// Render draws one row per dungeon row, one marker per cell. The player
// marker wins over visited, which wins over unexplored.
func (d *Dungeon) Render(player Position) string {
	rows := make([]string, d.Size)
	cells := make([]string, d.Size)
	for y := 0; y < d.Size; y++ {
		for x := 0; x < d.Size; x++ {
			cells[x] = string(d.MarkerAt(Position{X: x, Y: y}, player))
		}
		rows[y] = strings.Join(cells, CellSeparator)
	}
	return strings.Join(rows, RowSeparator)
}

// MarkerAt returns the map marker for cell p given the player position.
func (d *Dungeon) MarkerAt(p, player Position) Marker {
	switch {
	case p == player:
		return MarkerPlayer
	case d.IsVisited(p):
		return MarkerVisited
	default:
		return MarkerUnexplored
	}
}

// Clone returns a deep copy.
func (d *Dungeon) Clone() *Dungeon {
	if d == nil {
		return nil
	}
	visited := make([][]bool, len(d.Visited))
	for y, row := range d.Visited {
		visited[y] = append([]bool(nil), row...)
	}
	return &Dungeon{Size: d.Size, Visited: visited}
}

// Validate checks that the overlay matches the declared size.
func (d *Dungeon) Validate() error {
	if d.Size < MinSize || d.Size > MaxSize {
		return apperrors.InvalidInput("dungeon size %d out of range", d.Size)
	}
	if len(d.Visited) != d.Size {
		return apperrors.InvalidInput("visited overlay has %d rows, want %d", len(d.Visited), d.Size)
	}
	for y, row := range d.Visited {
		if len(row) != d.Size {
			return apperrors.InvalidInput("visited row %d has %d cells, want %d", y, len(row), d.Size)
		}
	}
	return nil
}
