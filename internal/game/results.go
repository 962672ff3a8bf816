package game

import (
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/inventory"
	"github.com/samdwyer/dungeoncrawl/internal/progression"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

// MonsterView is the caller-facing view of an attached monster.
type MonsterView struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"max_hp"`
	Attack int    `json:"attack"`
	Boss   bool   `json:"boss,omitempty"`
}

// Snapshot is the status view of a save.
type Snapshot struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Level          int               `json:"level"`
	Experience     int               `json:"exp"`
	ExpToNext      int               `json:"exp_to_next"`
	Health         int               `json:"health"`
	MaxHealth      int               `json:"max_health"`
	Position       world.Position    `json:"position"`
	State          State             `json:"state"`
	InBattle       bool              `json:"in_battle"`
	Monster        *MonsterView      `json:"monster,omitempty"`
	Inventory      []entity.Stack    `json:"inventory"`
	Equipped       string            `json:"equipped,omitempty"`
	DungeonSize    int               `json:"dungeon_size"`
	RoomsVisited   int               `json:"rooms_visited"`
	AvailableMoves []world.Direction `json:"available_moves"`
	CreatedAt      time.Time         `json:"created_at"`
}

func snapshot(p *entity.Player) Snapshot {
	snap := Snapshot{
		ID:             p.ID,
		Name:           p.Name,
		Level:          p.Level,
		Experience:     p.Experience,
		ExpToNext:      progression.ToNextLevel(p),
		Health:         p.Health,
		MaxHealth:      p.MaxHealth,
		Position:       p.Position,
		State:          StateOf(p),
		InBattle:       p.InBattle(),
		Inventory:      p.Inventory.Stacks(),
		Equipped:       p.Equipped,
		DungeonSize:    p.Dungeon.Size,
		RoomsVisited:   p.Dungeon.VisitedCount(),
		AvailableMoves: p.Dungeon.AvailableMoves(p.Position),
		CreatedAt:      p.CreatedAt,
	}
	snap.Monster = monsterView(p.Monster)
	return snap
}

func monsterView(m *entity.Monster) *MonsterView {
	if m == nil {
		return nil
	}
	return &MonsterView{Kind: m.Kind, Name: m.Name, HP: m.HP, MaxHP: m.MaxHP, Attack: m.Attack, Boss: m.Boss}
}

// MoveOutcome is the result of a move turn.
type MoveOutcome struct {
	Moved          bool              `json:"moved"`
	Event          string            `json:"event"`
	EventKind      string            `json:"event_kind,omitempty"`
	Boss           bool              `json:"boss,omitempty"`
	Position       world.Position    `json:"position"`
	AvailableMoves []world.Direction `json:"available_moves"`
	Health         int               `json:"health"`
	State          State             `json:"state"`
	Monster        *MonsterView      `json:"monster,omitempty"`
}

// FightOutcome is the result of a fight turn.
type FightOutcome struct {
	Action       string       `json:"action"`
	Result       string       `json:"result"`
	Monster      string       `json:"monster"`
	DamageDealt  int          `json:"damage_dealt"`
	DamageTaken  int          `json:"damage_taken"`
	MonsterHP    int          `json:"monster_hp"`
	GainedExp    int          `json:"gained_exp,omitempty"`
	LevelsGained int          `json:"levels_gained,omitempty"`
	Loot         string       `json:"loot,omitempty"`
	Health       int          `json:"health"`
	MaxHealth    int          `json:"max_health"`
	Level        int          `json:"level"`
	Experience   int          `json:"exp"`
	InBattle     bool         `json:"in_battle"`
	State        State        `json:"state"`
	Message      string       `json:"message"`
	Opponent     *MonsterView `json:"opponent,omitempty"`
}

func fightOutcome(p *entity.Player, res combat.Result) FightOutcome {
	return FightOutcome{
		Action:       res.Action.String(),
		Result:       string(res.Outcome),
		Monster:      res.Monster,
		DamageDealt:  res.DamageDealt,
		DamageTaken:  res.DamageTaken,
		MonsterHP:    res.MonsterHP,
		GainedExp:    res.Experience,
		LevelsGained: res.LevelsGained,
		Loot:         res.Loot,
		Health:       p.Health,
		MaxHealth:    p.MaxHealth,
		Level:        p.Level,
		Experience:   p.Experience,
		InBattle:     p.InBattle(),
		State:        StateOf(p),
		Message:      res.Message,
		Opponent:     monsterView(p.Monster),
	}
}

// UseOutcome is the result of a use_item turn.
type UseOutcome struct {
	inventory.UseResult
	State State `json:"state"`
}

// EquipOutcome is the result of an equip turn.
type EquipOutcome struct {
	inventory.EquipResult
	State State `json:"state"`
}

// RespawnOutcome is the result of a respawn turn.
type RespawnOutcome struct {
	Message    string         `json:"message"`
	Health     int            `json:"health"`
	MaxHealth  int            `json:"max_health"`
	Experience int            `json:"exp"`
	ExpLost    int            `json:"exp_lost"`
	Position   world.Position `json:"position"`
	State      State          `json:"state"`
}
