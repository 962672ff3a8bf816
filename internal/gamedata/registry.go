package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/dungeoncrawl/internal/random"
)

// MonsterRegistry holds loaded monster definitions and provides spawning utilities.
type MonsterRegistry struct {
	monsters    []MonsterDef
	totalWeight int
	boss        *MonsterDef
}

// NewMonsterRegistry creates a registry from loaded monster definitions.
func NewMonsterRegistry(monsters []MonsterDef) *MonsterRegistry {
	r := &MonsterRegistry{monsters: monsters}
	for i := range monsters {
		if monsters[i].Boss {
			if r.boss == nil {
				r.boss = &monsters[i]
			}
			continue
		}
		r.totalWeight += monsters[i].SpawnWeight
	}
	return r
}

// SpawnRandom selects a non-boss monster definition using weighted probability.
// Monsters with higher spawnWeight are more likely to be selected.
func (r *MonsterRegistry) SpawnRandom(rng random.Source) *MonsterDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.monsters {
		if r.monsters[i].Boss {
			continue
		}
		cumulative += r.monsters[i].SpawnWeight
		if roll < cumulative {
			return &r.monsters[i]
		}
	}
	return nil
}

// Boss returns the boss definition, or nil if none is defined.
func (r *MonsterRegistry) Boss() *MonsterDef {
	return r.boss
}

// GetByID returns the monster definition with the given ID, or nil if not found.
func (r *MonsterRegistry) GetByID(id string) *MonsterDef {
	for i := range r.monsters {
		if r.monsters[i].ID == id {
			return &r.monsters[i]
		}
	}
	return nil
}

// All returns all monster definitions.
func (r *MonsterRegistry) All() []MonsterDef {
	return r.monsters
}

// ItemRegistry holds the fixed item effect table.
type ItemRegistry struct {
	items          map[string]*ItemDef
	all            []ItemDef
	treasureWeight int
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	r := &ItemRegistry{
		items: make(map[string]*ItemDef, len(items)),
		all:   items,
	}
	for i := range items {
		r.items[items[i].ID] = &items[i]
		r.treasureWeight += items[i].TreasureWeight
	}
	return r
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// Treasure picks a treasure item by weight and the number found.
func (r *ItemRegistry) Treasure(rng random.Source) (*ItemDef, int) {
	if r.treasureWeight <= 0 {
		return nil, 0
	}

	roll := rng.Intn(r.treasureWeight)
	cumulative := 0
	for i := range r.all {
		cumulative += r.all[i].TreasureWeight
		if roll < cumulative {
			item := &r.all[i]
			lo := max(item.TreasureMin, 1)
			return item, random.Between(rng, lo, max(item.TreasureMax, lo))
		}
	}
	return nil, 0
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Tables bundles every registry the rules consult.
type Tables struct {
	Monsters *MonsterRegistry
	Items    *ItemRegistry
	Ambience []string
}

// LoadTables loads and cross-validates the embedded game data.
func LoadTables() (*Tables, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	ambience, err := LoadAmbience()
	if err != nil {
		return nil, err
	}
	return NewTables(monsters, items, ambience)
}

// MustLoadTables loads the embedded tables, panicking on error.
func MustLoadTables() *Tables {
	tables, err := LoadTables()
	if err != nil {
		panic(err)
	}
	return tables
}

// NewTables validates definitions and builds the registries.
func NewTables(monsters []MonsterDef, items []ItemDef, ambience []string) (*Tables, error) {
	if len(monsters) == 0 {
		return nil, errors.New("no monsters defined")
	}
	if len(ambience) == 0 {
		return nil, errors.New("no ambience lines defined")
	}

	itemIDs := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, errors.New("item with empty id")
		}
		if itemIDs[it.ID] {
			return nil, fmt.Errorf("duplicate item %q", it.ID)
		}
		itemIDs[it.ID] = true
		switch it.Kind {
		case KindConsumable:
			if it.HealMin <= 0 || it.HealMax < it.HealMin {
				return nil, fmt.Errorf("item %q: invalid heal range %d..%d", it.ID, it.HealMin, it.HealMax)
			}
		case KindEquippable:
			if it.DamageBonus <= 0 {
				return nil, fmt.Errorf("item %q: equippable without damage bonus", it.ID)
			}
		case KindValuable:
		default:
			return nil, fmt.Errorf("item %q: unknown kind %q", it.ID, it.Kind)
		}
	}

	monsterIDs := make(map[string]bool, len(monsters))
	randomWeight := 0
	for _, m := range monsters {
		if monsterIDs[m.ID] {
			return nil, fmt.Errorf("duplicate monster %q", m.ID)
		}
		monsterIDs[m.ID] = true
		if m.HP <= 0 || m.Attack <= 0 {
			return nil, fmt.Errorf("monster %q: hp and attack must be positive", m.ID)
		}
		if m.Loot != "" && !itemIDs[m.Loot] {
			return nil, fmt.Errorf("monster %q: unknown loot item %q", m.ID, m.Loot)
		}
		if !m.Boss {
			randomWeight += m.SpawnWeight
		}
	}
	if randomWeight <= 0 {
		return nil, errors.New("no monster has a positive spawn weight")
	}

	return &Tables{
		Monsters: NewMonsterRegistry(monsters),
		Items:    NewItemRegistry(items),
		Ambience: ambience,
	}, nil
}
