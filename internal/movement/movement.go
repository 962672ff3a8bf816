// Package movement moves a player between rooms and triggers room events.
package movement

import (
	"context"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/event"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// BlockedText is the event text for a move into the dungeon wall.
const BlockedText = "A cold stone wall blocks your path."

// Result is the outcome of a move request.
type Result struct {
	Moved          bool
	Event          string
	Outcome        *event.Outcome // nil when the move was blocked
	Position       world.Position
	AvailableMoves []world.Direction
}

// Resolver validates and applies moves.
type Resolver struct {
	events *event.Resolver
}

// NewResolver creates a resolver that rolls events with events.
func NewResolver(events *event.Resolver) *Resolver {
	return &Resolver{events: events}
}

// Move steps the player one room in dir. A move off the grid is blocked
// without error and fires no event. Moving while dead or mid-battle is a
// DOMAIN_ERROR.
func (r *Resolver) Move(ctx context.Context, p *entity.Player, dir world.Direction) (Result, error) {
	if p.IsDead() {
		return Result{}, apperrors.Domain("you are dead; respawn first")
	}

	target := dir.Apply(p.Position)
	if !p.Dungeon.InBounds(target) {
		return result(p, false, BlockedText, nil), nil
	}
	if p.InBattle() {
		return Result{}, apperrors.Domain("you cannot move while in battle")
	}

	p.Position = target
	p.Dungeon.MarkVisited(target)
	out := r.events.Resolve(ctx, p)
	return result(p, true, out.Text, &out), nil
}

func result(p *entity.Player, moved bool, text string, out *event.Outcome) Result {
	return Result{
		Moved:          moved,
		Event:          text,
		Outcome:        out,
		Position:       p.Position,
		AvailableMoves: p.Dungeon.AvailableMoves(p.Position),
	}
}
