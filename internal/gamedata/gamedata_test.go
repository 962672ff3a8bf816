package gamedata

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/random"
)

func TestLoadMonsters(t *testing.T) {
	monsters, err := LoadMonsters()
	if err != nil {
		t.Fatalf("Failed to load monsters: %v", err)
	}

	if len(monsters) != 4 {
		t.Errorf("Expected 4 monsters, got %d", len(monsters))
	}

	expectedIDs := map[string]bool{"goblin": false, "skeleton": false, "orc": false, "dungeon_warden": false}
	for _, m := range monsters {
		if _, ok := expectedIDs[m.ID]; ok {
			expectedIDs[m.ID] = true
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected monster %q not found", id)
		}
	}
}

func TestLoadTables(t *testing.T) {
	tables, err := LoadTables()
	if err != nil {
		t.Fatalf("Failed to load tables: %v", err)
	}

	boss := tables.Monsters.Boss()
	if boss == nil {
		t.Fatal("Boss not defined")
	}
	if boss.Name != "Dungeon Warden" || boss.HP != 35 || boss.Attack != 6 {
		t.Errorf("Boss = %+v, want Dungeon Warden hp 35 atk 6", *boss)
	}

	potion := tables.Items.GetByID("healing_potion")
	if potion == nil || !potion.Consumable() {
		t.Fatalf("healing_potion should be consumable, got %+v", potion)
	}
	sword := tables.Items.GetByID("rusty_sword")
	if sword == nil || !sword.Equippable() || sword.DamageBonus != 2 {
		t.Fatalf("rusty_sword should be equippable with +2, got %+v", sword)
	}
	if len(tables.Ambience) != 4 {
		t.Errorf("Expected 4 ambience lines, got %d", len(tables.Ambience))
	}
	if got := len(tables.Monsters.All()); got != 4 {
		t.Errorf("Expected 4 monsters, got %d", got)
	}
	if got := len(tables.Items.All()); got != 5 {
		t.Errorf("Expected 5 items, got %d", got)
	}
}

func TestSpawnRandomNeverReturnsBoss(t *testing.T) {
	tables := MustLoadTables()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		def := tables.Monsters.SpawnRandom(rng)
		if def == nil {
			t.Fatal("SpawnRandom returned nil")
		}
		if def.Boss {
			t.Fatalf("SpawnRandom returned boss %q", def.ID)
		}
	}
}

func TestSpawnRandomDeterministic(t *testing.T) {
	registry := MustLoadTables().Monsters

	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 10; i++ {
		a, b := registry.SpawnRandom(rng1).ID, registry.SpawnRandom(rng2).ID
		if a != b {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a, b)
		}
	}
}

func TestSpawnRandomWeights(t *testing.T) {
	registry := MustLoadTables().Monsters

	// goblin 50, skeleton 30, orc 20
	tests := []struct {
		roll int
		want string
	}{
		{0, "goblin"},
		{49, "goblin"},
		{50, "skeleton"},
		{79, "skeleton"},
		{80, "orc"},
		{99, "orc"},
	}
	for _, tt := range tests {
		got := registry.SpawnRandom(&random.Script{Ints: []int{tt.roll}})
		if got.ID != tt.want {
			t.Errorf("SpawnRandom(roll %d) = %s, want %s", tt.roll, got.ID, tt.want)
		}
	}
}

func TestTreasure(t *testing.T) {
	items := MustLoadTables().Items

	// healing_potion 40, rusty_sword 15, gold_coin 35, gem 10
	item, count := items.Treasure(&random.Script{Ints: []int{60, 4}})
	if item.ID != "gold_coin" {
		t.Fatalf("Treasure(60) = %s, want gold_coin", item.ID)
	}
	if count != 5 {
		t.Errorf("gold count = %d, want 5", count)
	}

	item, count = items.Treasure(&random.Script{Ints: []int{0}})
	if item.ID != "healing_potion" || count != 1 {
		t.Errorf("Treasure(0) = %s x%d, want healing_potion x1", item.ID, count)
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		item, _ := items.Treasure(rng)
		if item.ID == "warden_blade" {
			t.Fatal("warden_blade must only drop from the boss")
		}
	}
}

func TestNewTablesValidation(t *testing.T) {
	goblin := MonsterDef{ID: "goblin", HP: 6, Attack: 2, SpawnWeight: 1}
	potion := ItemDef{ID: "potion", Kind: KindConsumable, HealMin: 1, HealMax: 2}
	ambience := []string{"quiet"}

	tests := []struct {
		name     string
		monsters []MonsterDef
		items    []ItemDef
		want     string
	}{
		{"no monsters", nil, []ItemDef{potion}, "no monsters"},
		{"unknown loot", []MonsterDef{{ID: "a", HP: 1, Attack: 1, SpawnWeight: 1, Loot: "nope"}}, []ItemDef{potion}, "unknown loot"},
		{"duplicate item", []MonsterDef{goblin}, []ItemDef{potion, potion}, "duplicate item"},
		{"bad heal", []MonsterDef{goblin}, []ItemDef{{ID: "p", Kind: KindConsumable}}, "heal range"},
		{"bad kind", []MonsterDef{goblin}, []ItemDef{{ID: "p", Kind: "edible"}}, "unknown kind"},
		{"only bosses", []MonsterDef{{ID: "b", HP: 1, Attack: 1, Boss: true}}, nil, "spawn weight"},
	}

	for _, tt := range tests {
		_, err := NewTables(tt.monsters, tt.items, ambience)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: NewTables() error = %v, want containing %q", tt.name, err, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"00FF00", true},
		{"#ffffff", true},
		{"invalid", false},
		{"#FFF", false},
		{"#GG0000", false},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestMonsterDefGlyph(t *testing.T) {
	def := MonsterDef{Glyph: "g", Color: "#00FF00"}
	if def.GlyphRune() != 'g' {
		t.Errorf("GlyphRune() = %c, want g", def.GlyphRune())
	}
	if (&MonsterDef{}).GlyphRune() != '?' {
		t.Error("empty glyph should render as ?")
	}
	if def.TCellColor() == 0 {
		t.Error("TCellColor returned zero color")
	}
}
