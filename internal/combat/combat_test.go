package combat

import (
	"context"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/random"
)

func newEngine(t *testing.T, rng random.Source) *Engine {
	t.Helper()
	tables, err := gamedata.LoadTables()
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	return NewEngine(tables, rng)
}

func newFighter(monster *entity.Monster) *entity.Player {
	return &entity.Player{
		ID:        "p",
		Name:      "Tester",
		Level:     1,
		Health:    20,
		MaxHealth: 20,
		Inventory: entity.Inventory{},
		Monster: monster,
	}
}

func goblin(hp int) *entity.Monster {
	return &entity.Monster{Kind: "goblin", Name: "Goblin", HP: hp, MaxHP: hp, Attack: 2, Experience: 5}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		token   string
		want    Action
		wantErr bool
	}{
		{"attack", ActionAttack, false},
		{"ATTACK", ActionAttack, false},
		{"flee", ActionFlee, false},
		{"run", ActionFlee, false},
		{" Run ", ActionFlee, false},
		{"dance", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAction(tt.token)
		if tt.wantErr {
			if apperrors.CodeOf(err) != apperrors.CodeInvalidInput {
				t.Errorf("ParseAction(%q) error = %v, want INVALID_INPUT", tt.token, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseAction(%q) = %v, %v, want %v", tt.token, got, err, tt.want)
		}
	}
}

func TestAttackDefeatsMonster(t *testing.T) {
	// Intn(4)=2 rolls 5 damage; loot roll 0.9 misses the 50% drop.
	e := newEngine(t, &random.Script{Ints: []int{2}, Floats: []float64{0.9}})
	p := newFighter(goblin(4))

	res, err := e.Attack(context.Background(), p)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if res.Outcome != OutcomeVictory || res.DamageDealt != 4 {
		t.Errorf("result = %+v, want victory dealing 4", res)
	}
	if p.InBattle() || res.BattleOngoing {
		t.Error("battle should be cleared after victory")
	}
	if p.Experience != 5 || res.Experience != 5 {
		t.Errorf("experience = %d, want 5", p.Experience)
	}
	if res.Loot != "" || len(p.Inventory) != 0 {
		t.Errorf("unexpected loot %q", res.Loot)
	}
	if p.Health != 20 {
		t.Errorf("Health = %d, monster must not retaliate after dying", p.Health)
	}
}

func TestAttackVictoryDropsLoot(t *testing.T) {
	e := newEngine(t, &random.Script{Ints: []int{3}, Floats: []float64{0.1}})
	p := newFighter(goblin(6))

	res, err := e.Attack(context.Background(), p)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if res.Loot != "healing_potion" || p.Inventory.Count("healing_potion") != 1 {
		t.Errorf("loot = %q, inventory = %v", res.Loot, p.Inventory)
	}
}

func TestAttackVictoryLevelsUp(t *testing.T) {
	e := newEngine(t, &random.Script{Ints: []int{3}, Floats: []float64{0.9}})
	p := newFighter(goblin(3))
	p.Experience = 18
	p.Health = 4

	res, err := e.Attack(context.Background(), p)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if res.LevelsGained != 1 || p.Level != 2 {
		t.Errorf("LevelsGained = %d, Level = %d, want 1 and 2", res.LevelsGained, p.Level)
	}
	if p.Health != 25 || p.MaxHealth != 25 {
		t.Errorf("health = %d/%d, want 25/25", p.Health, p.MaxHealth)
	}
}

func TestAttackExchange(t *testing.T) {
	// 3 damage to the monster, retaliation attack+1 = 3.
	e := newEngine(t, &random.Script{Ints: []int{0, 2}})
	p := newFighter(goblin(10))

	res, err := e.Attack(context.Background(), p)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if res.Outcome != OutcomeExchange || !res.BattleOngoing {
		t.Errorf("outcome = %s ongoing = %v", res.Outcome, res.BattleOngoing)
	}
	if p.Monster.HP != 7 || res.MonsterHP != 7 {
		t.Errorf("monster hp = %d, want 7", p.Monster.HP)
	}
	if p.Health != 17 || res.DamageTaken != 3 {
		t.Errorf("health = %d taken = %d, want 17 and 3", p.Health, res.DamageTaken)
	}
}

func TestAttackDefeat(t *testing.T) {
	e := newEngine(t, &random.Script{Ints: []int{0, 1}})
	p := newFighter(&entity.Monster{Kind: "orc", Name: "Orc", HP: 20, MaxHP: 20, Attack: 3, Experience: 14})
	p.Health = 2
	p.Experience = 9

	res, err := e.Attack(context.Background(), p)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	if res.Outcome != OutcomeDefeat {
		t.Errorf("outcome = %s, want defeat", res.Outcome)
	}
	if p.Health != 0 || !p.IsDead() || p.InBattle() {
		t.Errorf("player health %d in battle %v, want dead out of battle", p.Health, p.InBattle())
	}
	if p.Experience != 9 {
		t.Errorf("Experience = %d, death must not cost experience", p.Experience)
	}
}

func TestAttackAppliesLevelAndWeapon(t *testing.T) {
	e := newEngine(t, &random.Script{Ints: []int{0, 1}})
	p := newFighter(goblin(30))
	p.Level = 3
	p.MaxHealth = 30
	p.Inventory = p.Inventory.Add("rusty_sword", 1)
	p.Equipped = "rusty_sword"

	res, err := e.Attack(context.Background(), p)
	if err != nil {
		t.Fatalf("Attack: %v", err)
	}
	// base 3 + level bonus 2 + sword 2
	if res.DamageDealt != 7 {
		t.Errorf("DamageDealt = %d, want 7", res.DamageDealt)
	}
}

func TestMonsterDamageMinimum(t *testing.T) {
	e := newEngine(t, &random.Script{Ints: []int{0}})
	if got := e.MonsterDamage(&entity.Monster{Attack: 1}); got != 1 {
		t.Errorf("MonsterDamage() = %d, want 1", got)
	}
}

func TestFlee(t *testing.T) {
	tests := []struct {
		name        string
		rng         *random.Script
		want        Outcome
		wantHealth  int
		wantOngoing bool
	}{
		{"escape", &random.Script{Floats: []float64{0.5}}, OutcomeEscaped, 20, false},
		{"caught", &random.Script{Floats: []float64{0.7}, Ints: []int{0}}, OutcomeFailedFlee, 19, true},
	}
	for _, tt := range tests {
		e := newEngine(t, tt.rng)
		p := newFighter(goblin(6))

		res, err := e.Flee(context.Background(), p)
		if err != nil {
			t.Fatalf("%s: Flee: %v", tt.name, err)
		}
		if res.Outcome != tt.want || p.Health != tt.wantHealth || p.InBattle() != tt.wantOngoing {
			t.Errorf("%s: outcome %s health %d battle %v, want %s %d %v",
				tt.name, res.Outcome, p.Health, p.InBattle(), tt.want, tt.wantHealth, tt.wantOngoing)
		}
		if p.Experience != 0 {
			t.Errorf("%s: flee changed experience", tt.name)
		}
	}
}

func TestFleeFailureCanKill(t *testing.T) {
	e := newEngine(t, &random.Script{Floats: []float64{0.99}, Ints: []int{2}})
	p := newFighter(goblin(6))
	p.Health = 3

	res, err := e.Resolve(context.Background(), p, ActionFlee)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Outcome != OutcomeDefeat || !p.IsDead() || p.InBattle() {
		t.Errorf("outcome %s health %d, want defeat", res.Outcome, p.Health)
	}
}

func TestCombatRequiresBattle(t *testing.T) {
	e := newEngine(t, &random.Script{})

	idle := newFighter(nil)
	for _, action := range []Action{ActionAttack, ActionFlee} {
		if _, err := e.Resolve(context.Background(), idle, action); apperrors.CodeOf(err) != apperrors.CodeDomain {
			t.Errorf("%s without battle: error = %v, want DOMAIN_ERROR", action, err)
		}
	}

	dead := newFighter(nil)
	dead.Health = 0
	if _, err := e.Attack(context.Background(), dead); apperrors.CodeOf(err) != apperrors.CodeDomain {
		t.Errorf("attack while dead: error = %v, want DOMAIN_ERROR", err)
	}
}
