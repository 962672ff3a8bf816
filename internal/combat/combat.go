// Package combat resolves attack exchanges and flee attempts against the
// monster attached to a player.
package combat

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/inventory"
	"github.com/samdwyer/dungeoncrawl/internal/progression"
	"github.com/samdwyer/dungeoncrawl/internal/random"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// Player base damage before level and equipment bonuses.
	BaseDamageMin = 3
	BaseDamageMax = 6

	// FleeChance is the probability that a flee attempt succeeds.
	FleeChance = 0.6
)

// Combatant is anything that can trade blows.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetHP() int
	GetMaxHP() int
	TakeDamage(amount int) int // Returns actual damage taken
	Heal(amount int) int       // Returns actual amount healed
}

var (
	_ Combatant = (*entity.Player)(nil)
	_ Combatant = (*entity.Monster)(nil)
)

// Action is a combat command.
type Action int

const (
	ActionAttack Action = iota
	ActionFlee
)

// String returns the canonical token for the action.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// ParseAction maps a case-insensitive token to an Action. "run" is accepted
// as a synonym for flee.
func ParseAction(token string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "attack":
		return ActionAttack, nil
	case "flee", "run":
		return ActionFlee, nil
	default:
		return 0, apperrors.InvalidInput("invalid combat action %q", token)
	}
}

// Outcome is how a combat turn ended.
type Outcome string

const (
	OutcomeExchange   Outcome = "exchange"    // both sides struck, battle continues
	OutcomeVictory    Outcome = "victory"     // monster defeated
	OutcomeDefeat     Outcome = "defeat"      // player died
	OutcomeEscaped    Outcome = "escaped"     // flee succeeded
	OutcomeFailedFlee Outcome = "failed_flee" // flee failed, player survived the hit
)

// Result is the outcome of one combat turn.
type Result struct {
	Action        Action
	Outcome       Outcome
	Monster       string // Monster name
	DamageDealt   int    // Damage the player did to the monster
	DamageTaken   int    // Damage the monster did to the player
	MonsterHP     int    // Monster hit points after the turn; 0 when the battle ended
	Experience    int    // Experience gained on victory
	LevelsGained  int
	Loot          string // Item dropped on victory
	PlayerHealth  int
	PlayerLevel   int
	PlayerMaxHP   int
	BattleOngoing bool
	Message       string
}

// Engine resolves combat turns using the monster and item tables.
type Engine struct {
	monsters *gamedata.MonsterRegistry
	items    *inventory.Manager
	rng      random.Source
}

// NewEngine creates an engine over the given tables and random source.
func NewEngine(tables *gamedata.Tables, rng random.Source) *Engine {
	return &Engine{
		monsters: tables.Monsters,
		items:    inventory.NewManager(tables.Items, rng),
		rng:      rng,
	}
}

// Resolve dispatches one combat action.
func (e *Engine) Resolve(ctx context.Context, p *entity.Player, action Action) (Result, error) {
	switch action {
	case ActionAttack:
		return e.Attack(ctx, p)
	case ActionFlee:
		return e.Flee(ctx, p)
	default:
		return Result{}, apperrors.InvalidInput("invalid combat action %d", action)
	}
}

// Attack strikes the monster. A kill ends the battle and awards experience
// and loot; otherwise the monster strikes back.
func (e *Engine) Attack(ctx context.Context, p *entity.Player) (Result, error) {
	_, span := telemetry.Tracer("combat").Start(ctx, "combat.attack")
	defer span.End()

	if err := requireBattle(p); err != nil {
		return Result{}, err
	}
	monster := p.Monster

	res := Result{Action: ActionAttack, Monster: monster.Name}
	res.DamageDealt = strike(monster, e.PlayerDamage(p))

	if !monster.IsAlive() {
		e.victory(p, monster, &res)
	} else {
		e.retaliate(p, monster, &res)
		if res.Outcome == "" {
			res.Outcome = OutcomeExchange
			res.Message = fmt.Sprintf("You hit the %s for %d. It hits back for %d.", monster.Name, res.DamageDealt, res.DamageTaken)
		}
	}

	finish(p, &res)
	span.SetAttributes(
		attribute.String("outcome", string(res.Outcome)),
		attribute.Int("damage.dealt", res.DamageDealt),
		attribute.Int("damage.taken", res.DamageTaken),
	)
	return res, nil
}

// Flee tries to escape. Failure gives the monster a free strike.
func (e *Engine) Flee(ctx context.Context, p *entity.Player) (Result, error) {
	_, span := telemetry.Tracer("combat").Start(ctx, "combat.flee")
	defer span.End()

	if err := requireBattle(p); err != nil {
		return Result{}, err
	}
	monster := p.Monster

	res := Result{Action: ActionFlee, Monster: monster.Name}
	if random.Chance(e.rng, FleeChance) {
		p.Monster = nil
		res.Outcome = OutcomeEscaped
		res.Message = "You escaped the fight."
	} else {
		e.retaliate(p, monster, &res)
		if res.Outcome == "" {
			res.Outcome = OutcomeFailedFlee
			res.Message = fmt.Sprintf("You fail to escape. The %s hits you for %d.", monster.Name, res.DamageTaken)
		}
	}

	finish(p, &res)
	span.SetAttributes(
		attribute.String("outcome", string(res.Outcome)),
		attribute.Int("damage.taken", res.DamageTaken),
	)
	return res, nil
}

// PlayerDamage rolls the player's attack: base range plus one per level
// above 1 plus the equipped weapon bonus.
func (e *Engine) PlayerDamage(p *entity.Player) int {
	return random.Between(e.rng, BaseDamageMin, BaseDamageMax) + (p.Level - 1) + e.items.DamageBonus(p)
}

// MonsterDamage rolls a monster strike: base attack -1..+1, at least 1.
func (e *Engine) MonsterDamage(m *entity.Monster) int {
	return max(m.Attack+e.rng.Intn(3)-1, 1)
}

func (e *Engine) victory(p *entity.Player, monster *entity.Monster, res *Result) {
	p.Monster = nil
	award := progression.Grant(p, monster.Experience)
	res.Outcome = OutcomeVictory
	res.Experience = award.Experience
	res.LevelsGained = award.LevelsGained

	if def := e.monsters.GetByID(monster.Kind); def != nil && def.Loot != "" {
		if random.Chance(e.rng, def.LootChance) {
			p.Inventory = p.Inventory.Add(def.Loot, 1)
			res.Loot = def.Loot
		}
	}

	res.Message = fmt.Sprintf("You defeat the %s and gain %d experience.", monster.Name, res.Experience)
	if res.Loot != "" {
		res.Message += fmt.Sprintf(" It dropped a %s.", res.Loot)
	}
	if res.LevelsGained > 0 {
		res.Message += fmt.Sprintf(" You reach level %d!", p.Level)
	}
}

func (e *Engine) retaliate(p *entity.Player, monster *entity.Monster, res *Result) {
	res.DamageTaken = strike(p, e.MonsterDamage(monster))
	if p.IsAlive() {
		return
	}
	p.Monster = nil
	res.Outcome = OutcomeDefeat
	res.Message = fmt.Sprintf("The %s strikes you down. You have died.", monster.Name)
}

func strike(target Combatant, damage int) int {
	return target.TakeDamage(damage)
}

func requireBattle(p *entity.Player) error {
	if p.IsDead() {
		return apperrors.Domain("you are dead; respawn first")
	}
	if !p.InBattle() {
		return apperrors.Domain("no monster to fight")
	}
	return nil
}

func finish(p *entity.Player, res *Result) {
	res.BattleOngoing = p.InBattle()
	if p.Monster != nil {
		res.MonsterHP = p.Monster.HP
	}
	res.PlayerHealth = p.Health
	res.PlayerLevel = p.Level
	res.PlayerMaxHP = p.MaxHealth
}
