// Package inventory applies consumable and equipment effects to a player.
package inventory

import (
	"fmt"
	"strings"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	apperrors "github.com/samdwyer/dungeoncrawl/internal/errors"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/random"
)

// UseResult describes a consumed item.
type UseResult struct {
	Item      string `json:"item"`
	Healed    int    `json:"healed"`
	Health    int    `json:"health"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

// EquipResult describes an equip request.
type EquipResult struct {
	Item        string `json:"equipped"`
	Previous    string `json:"previous,omitempty"`
	DamageBonus int    `json:"damage_bonus"`
	Changed     bool   `json:"changed"`
	Message     string `json:"message"`
}

// Manager resolves item tokens against the item table.
type Manager struct {
	items *gamedata.ItemRegistry
	rng   random.Source
}

// NewManager creates a manager over the given item table.
func NewManager(items *gamedata.ItemRegistry, rng random.Source) *Manager {
	return &Manager{items: items, rng: rng}
}

// Lookup maps an item token to its definition. Unknown tokens are
// INVALID_INPUT.
func (m *Manager) Lookup(token string) (*gamedata.ItemDef, error) {
	id := strings.ToLower(strings.TrimSpace(token))
	if id == "" {
		return nil, apperrors.InvalidInput("item is required")
	}
	def := m.items.GetByID(id)
	if def == nil {
		return nil, apperrors.InvalidInput("unknown item %q", token)
	}
	return def, nil
}

// Use consumes one owned consumable and heals the player, clamped at max
// health. Nothing changes on error.
func (m *Manager) Use(p *entity.Player, token string) (UseResult, error) {
	if p.IsDead() {
		return UseResult{}, apperrors.Domain("you are dead; respawn first")
	}
	def, err := m.Lookup(token)
	if err != nil {
		return UseResult{}, err
	}
	if !p.Inventory.Has(def.ID) {
		return UseResult{}, apperrors.Domain("item %s not in inventory", def.ID)
	}
	if !def.Consumable() {
		return UseResult{}, apperrors.Domain("%s has no use", def.Name)
	}

	p.Inventory.Remove(def.ID, 1)
	healed := p.Heal(random.Between(m.rng, def.HealMin, def.HealMax))

	return UseResult{
		Item:      def.ID,
		Healed:    healed,
		Health:    p.Health,
		Remaining: p.Inventory.Count(def.ID),
		Message:   fmt.Sprintf("You use the %s and recover %d health.", def.Name, healed),
	}, nil
}

// Equip makes an owned equippable the active weapon, replacing any
// previous one. Re-equipping the current weapon changes nothing.
func (m *Manager) Equip(p *entity.Player, token string) (EquipResult, error) {
	if p.IsDead() {
		return EquipResult{}, apperrors.Domain("you are dead; respawn first")
	}
	def, err := m.Lookup(token)
	if err != nil {
		return EquipResult{}, err
	}
	if !p.Inventory.Has(def.ID) {
		return EquipResult{}, apperrors.Domain("item %s not owned", def.ID)
	}
	if !def.Equippable() {
		return EquipResult{}, apperrors.Domain("%s cannot be equipped", def.Name)
	}

	result := EquipResult{Item: def.ID, DamageBonus: def.DamageBonus}
	if p.Equipped == def.ID {
		result.Message = fmt.Sprintf("The %s is already in your hand.", def.Name)
		return result, nil
	}

	result.Previous = p.Equipped
	result.Changed = true
	p.Equipped = def.ID
	result.Message = fmt.Sprintf("You equip the %s (+%d damage).", def.Name, def.DamageBonus)
	return result, nil
}

// DamageBonus returns the attack bonus granted by the equipped item.
func (m *Manager) DamageBonus(p *entity.Player) int {
	if p.Equipped == "" || !p.Inventory.Has(p.Equipped) {
		return 0
	}
	def := m.items.GetByID(p.Equipped)
	if def == nil || !def.Equippable() {
		return 0
	}
	return def.DamageBonus
}

// BestWeapon returns the owned equippable with the highest bonus, or "" when
// none is owned.
func (m *Manager) BestWeapon(inv entity.Inventory) string {
	best, bonus := "", 0
	for _, stack := range inv.Stacks() {
		def := m.items.GetByID(stack.Item)
		if def != nil && def.Equippable() && def.DamageBonus > bonus {
			best, bonus = def.ID, def.DamageBonus
		}
	}
	return best
}

// FirstConsumable returns the first owned consumable in item order, or "".
func (m *Manager) FirstConsumable(inv entity.Inventory) string {
	for _, stack := range inv.Stacks() {
		if def := m.items.GetByID(stack.Item); def != nil && def.Consumable() {
			return def.ID
		}
	}
	return ""
}
