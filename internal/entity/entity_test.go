package entity

import (
	"testing"
	"time"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

func newTestPlayer(t *testing.T) *Player {
	t.Helper()
	d, err := world.NewDungeon(5)
	if err != nil {
		t.Fatalf("NewDungeon: %v", err)
	}
	return &Player{
		ID:        "save-1",
		Name:      "Tester",
		Level:     1,
		Health:    20,
		MaxHealth: 20,
		Inventory: Inventory{},
		Dungeon:   d,
		CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPlayerTakeDamageFloorsAtZero(t *testing.T) {
	p := newTestPlayer(t)
	p.Health = 5
	p.Monster = &Monster{Name: "Goblin", HP: 3}

	if got := p.TakeDamage(8); got != 5 {
		t.Errorf("TakeDamage(8) = %d, want 5", got)
	}
	if p.Health != 0 {
		t.Errorf("Health = %d, want 0", p.Health)
	}
	if !p.IsDead() || p.InBattle() {
		t.Error("player at 0 health should be dead and out of battle")
	}
	if got := p.TakeDamage(-3); got != 0 {
		t.Errorf("TakeDamage(-3) = %d, want 0", got)
	}
}

func TestPlayerHealCapped(t *testing.T) {
	p := newTestPlayer(t)
	p.Health = 18

	if got := p.Heal(8); got != 2 {
		t.Errorf("Heal(8) = %d, want 2", got)
	}
	if p.Health != p.MaxHealth {
		t.Errorf("Health = %d, want %d", p.Health, p.MaxHealth)
	}
	if got := p.Heal(5); got != 0 {
		t.Errorf("Heal at max = %d, want 0", got)
	}
}

func TestPlayerCloneIsDeep(t *testing.T) {
	p := newTestPlayer(t)
	p.Inventory = p.Inventory.Add("gem", 1)
	p.Monster = &Monster{Name: "Orc", HP: 12}

	c := p.Clone()
	c.Inventory.Add("gem", 2)
	c.Monster.HP = 1
	c.Dungeon.MarkVisited(world.Position{X: 2, Y: 2})

	if p.Inventory.Count("gem") != 1 {
		t.Errorf("original gem count = %d, want 1", p.Inventory.Count("gem"))
	}
	if p.Monster.HP != 12 {
		t.Errorf("original monster hp = %d, want 12", p.Monster.HP)
	}
	if p.Dungeon.IsVisited(world.Position{X: 2, Y: 2}) {
		t.Error("original overlay changed through clone")
	}
}

func TestPlayerValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Player)
		ok     bool
	}{
		{"fresh", func(p *Player) {}, true},
		{"level zero", func(p *Player) { p.Level = 0 }, false},
		{"negative exp", func(p *Player) { p.Experience = -1 }, false},
		{"overhealed", func(p *Player) { p.Health = 21 }, false},
		{"out of bounds", func(p *Player) { p.Position = world.Position{X: 5, Y: 0} }, false},
		{"equipped unowned", func(p *Player) { p.Equipped = "rusty_sword" }, false},
		{"dead in battle", func(p *Player) { p.Health = 0; p.Monster = &Monster{HP: 3} }, false},
		{"dead monster attached", func(p *Player) { p.Monster = &Monster{HP: 0} }, false},
		{"no dungeon", func(p *Player) { p.Dungeon = nil }, false},
	}

	for _, tt := range tests {
		p := newTestPlayer(t)
		tt.mutate(p)
		err := p.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestNewMonsterFromDefScaling(t *testing.T) {
	goblin := &gamedata.MonsterDef{ID: "goblin", Name: "Goblin", HP: 6, Attack: 2, Experience: 5}
	boss := &gamedata.MonsterDef{ID: "warden", Name: "Warden", HP: 35, Attack: 6, Experience: 50, Boss: true}

	tests := []struct {
		def        *gamedata.MonsterDef
		level      int
		wantHP     int
		wantAttack int
	}{
		{goblin, 1, 6, 2},
		{goblin, 2, 8, 2},
		{goblin, 3, 10, 3},
		{goblin, 5, 14, 4},
		{boss, 7, 35, 6},
	}

	for _, tt := range tests {
		m := NewMonsterFromDef(tt.def, tt.level)
		if m.HP != tt.wantHP || m.MaxHP != tt.wantHP || m.Attack != tt.wantAttack {
			t.Errorf("%s at level %d = hp %d atk %d, want hp %d atk %d",
				tt.def.ID, tt.level, m.HP, m.Attack, tt.wantHP, tt.wantAttack)
		}
		if m.Experience != tt.def.Experience {
			t.Errorf("%s experience = %d, want %d", tt.def.ID, m.Experience, tt.def.Experience)
		}
	}
}

func TestMonsterTakeDamage(t *testing.T) {
	m := &Monster{Name: "Goblin", HP: 4, MaxHP: 6}
	if got := m.TakeDamage(5); got != 4 {
		t.Errorf("TakeDamage(5) = %d, want 4", got)
	}
	if m.IsAlive() {
		t.Error("monster should be dead")
	}
}

func TestInventory(t *testing.T) {
	var inv Inventory
	inv = inv.Add("healing_potion", 2)
	inv = inv.Add("gem", 1)
	inv = inv.Add("gem", 0)

	if inv.Count("healing_potion") != 2 || !inv.Has("gem") {
		t.Fatalf("inventory = %v", inv)
	}
	if inv.Remove("gem", 2) {
		t.Error("Remove more than owned should fail")
	}
	if inv.Count("gem") != 1 {
		t.Error("failed Remove must not change counts")
	}
	if !inv.Remove("gem", 1) || inv.Has("gem") {
		t.Error("Remove last gem should delete the entry")
	}

	stacks := inv.Add("apple", 3).Stacks()
	if len(stacks) != 2 || stacks[0].Item != "apple" || stacks[1].Item != "healing_potion" {
		t.Errorf("Stacks() = %v, want sorted apple, healing_potion", stacks)
	}
}
