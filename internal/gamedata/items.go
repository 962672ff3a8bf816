package gamedata

// ItemKind classifies what using or equipping an item does.
type ItemKind string

const (
	// KindConsumable items are used up and heal the player.
	KindConsumable ItemKind = "consumable"
	// KindEquippable items add a damage bonus while equipped.
	KindEquippable ItemKind = "equippable"
	// KindValuable items have no effect beyond being owned.
	KindValuable ItemKind = "valuable"
)

// ItemDef is the static effect metadata for an item identifier.
type ItemDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        ItemKind `json:"kind"`
	Description string   `json:"description"`
	HealMin     int      `json:"healMin,omitempty"`
	HealMax     int      `json:"healMax,omitempty"`
	DamageBonus int      `json:"damageBonus,omitempty"`

	// Treasure rooms pick items by weight and grant TreasureMin..TreasureMax.
	TreasureWeight int `json:"treasureWeight,omitempty"`
	TreasureMin    int `json:"treasureMin,omitempty"`
	TreasureMax    int `json:"treasureMax,omitempty"`
}

// Consumable reports whether the item can be used.
func (i *ItemDef) Consumable() bool { return i.Kind == KindConsumable }

// Equippable reports whether the item can be equipped.
func (i *ItemDef) Equippable() bool { return i.Kind == KindEquippable }

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}

// AmbienceFile represents the structure of ambience.json.
type AmbienceFile struct {
	Ambience []string `json:"ambience"`
}

// LoadAmbience loads the flavor lines shown when a room is quiet.
func LoadAmbience() ([]string, error) {
	file, err := Load[AmbienceFile]("ambience.json")
	if err != nil {
		return nil, err
	}
	return file.Ambience, nil
}
