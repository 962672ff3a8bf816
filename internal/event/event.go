// Package event decides what happens when a player enters a room.
package event

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/random"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

// Kind is the category of a room event.
type Kind string

const (
	KindMonster  Kind = "monster"
	KindTreasure Kind = "treasure"
	KindTrap     Kind = "trap"
	KindAmbience Kind = "ambience"
	KindBoss     Kind = "boss"
)

// Relative weights of the random outcomes.
const (
	WeightMonster  = 35
	WeightTreasure = 20
	WeightTrap     = 15
	WeightAmbience = 30
)

const (
	// BossLevel is the player level at which the boss cell wakes the boss.
	BossLevel = 5

	TrapDamageMin = 2
	TrapDamageMax = 5
)

var weighted = []struct {
	kind   Kind
	weight int
}{
	{KindMonster, WeightMonster},
	{KindTreasure, WeightTreasure},
	{KindTrap, WeightTrap},
	{KindAmbience, WeightAmbience},
}

// Outcome is the resolved event for one room entry.
type Outcome struct {
	Kind    Kind
	Text    string
	Monster string // Name of the spawned monster
	Item    string // Treasure item found
	Count   int    // Number of Item found
	Damage  int    // Trap damage taken
	Died    bool
}

// Resolver rolls room events against the game tables.
type Resolver struct {
	tables *gamedata.Tables
	rng    random.Source
}

// NewResolver creates a resolver.
func NewResolver(tables *gamedata.Tables, rng random.Source) *Resolver {
	return &Resolver{tables: tables, rng: rng}
}

// Resolve applies the event for the room the player now stands in. The boss
// cell overrides the random roll once the player reaches BossLevel.
func (r *Resolver) Resolve(ctx context.Context, p *entity.Player) Outcome {
	_, span := telemetry.Tracer("event").Start(ctx, "event.resolve")
	defer span.End()

	var out Outcome
	if boss := r.tables.Monsters.Boss(); boss != nil && p.Level >= BossLevel && p.Dungeon.IsBossCell(p.Position) {
		out = r.spawn(p, boss)
		out.Kind = KindBoss
		out.Text = fmt.Sprintf("The air trembles... The %s awakens!", boss.Name)
	} else {
		switch r.Roll() {
		case KindMonster:
			out = r.spawn(p, r.tables.Monsters.SpawnRandom(r.rng))
		case KindTreasure:
			out = r.treasure(p)
		case KindTrap:
			out = r.trap(p)
		default:
			out = r.ambience()
		}
	}

	span.SetAttributes(attribute.String("event.kind", string(out.Kind)))
	return out
}

// Roll picks one of the four random outcomes by weight.
func (r *Resolver) Roll() Kind {
	total := 0
	for _, w := range weighted {
		total += w.weight
	}
	roll := r.rng.Intn(total)
	for _, w := range weighted {
		if roll < w.weight {
			return w.kind
		}
		roll -= w.weight
	}
	return KindAmbience
}

func (r *Resolver) spawn(p *entity.Player, def *gamedata.MonsterDef) Outcome {
	if def == nil {
		return r.ambience()
	}
	p.Monster = entity.NewMonsterFromDef(def, p.Level)
	return Outcome{
		Kind:    KindMonster,
		Text:    fmt.Sprintf("A %s jumps out!", def.Name),
		Monster: def.Name,
	}
}

func (r *Resolver) treasure(p *entity.Player) Outcome {
	def, count := r.tables.Items.Treasure(r.rng)
	if def == nil {
		return r.ambience()
	}
	p.Inventory = p.Inventory.Add(def.ID, count)

	text := fmt.Sprintf("You found a %s!", def.Name)
	if count > 1 {
		text = fmt.Sprintf("You found %d x %s!", count, def.Name)
	}
	return Outcome{Kind: KindTreasure, Text: text, Item: def.ID, Count: count}
}

func (r *Resolver) trap(p *entity.Player) Outcome {
	return Trap(p, random.Between(r.rng, TrapDamageMin, TrapDamageMax))
}

// Trap springs a trap dealing damage, floored at zero health. Reaching zero
// kills the player.
func Trap(p *entity.Player, damage int) Outcome {
	out := Outcome{
		Kind:   KindTrap,
		Text:   fmt.Sprintf("A trap triggers! You take %d damage.", damage),
		Damage: p.TakeDamage(damage),
		Died:   p.IsDead(),
	}
	if out.Died {
		out.Text += " You have died."
	}
	return out
}

func (r *Resolver) ambience() Outcome {
	lines := r.tables.Ambience
	return Outcome{Kind: KindAmbience, Text: lines[r.rng.Intn(len(lines))]}
}
