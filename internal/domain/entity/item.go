package entity

import "time"

// SlotCount is the number of slots in each loadout row
const SlotCount = 10

// Item is a stack of petals of one type and rarity
type Item struct {
	Type   string `json:"type" msgpack:"type"`
	Rarity string `json:"rarity" msgpack:"rarity"`
	Stack  int    `json:"stack" msgpack:"stack"`
}

// Matches reports whether the item has the same type and rarity
func (i Item) Matches(itemType, rarity string) bool {
	return i.Type == itemType && i.Rarity == rarity
}

// PassiveKind defines the periodic effect of an equipped item
type PassiveKind int

const (
	PassiveNone PassiveKind = iota
	PassiveHeal
	PassiveAura
)

// ItemDef describes an item type's stats and effects
type ItemDef struct {
	Name     string
	Heal     float64
	Damage   float64
	Cooldown time.Duration
	UseTime  time.Duration
	Mass     float64

	// OnAttack items fire when the attack button is clicked
	OnAttack bool

	Passive         PassiveKind
	PassiveAmount   float64
	PassiveInterval time.Duration
	// PassiveRange is added to the petal orbit distance for aura effects
	PassiveRange float64

	// Hook names resolved against the equip hook registry
	OnEquip   string
	OnUnequip string

	Description string
}

// ItemRegistry maps item type names to their definitions
type ItemRegistry map[string]ItemDef

// Lookup returns the definition for an item type
func (r ItemRegistry) Lookup(itemType string) (ItemDef, bool) {
	def, ok := r[itemType]
	return def, ok
}

// DefaultItems returns the built-in item registry
func DefaultItems() ItemRegistry {
	return ItemRegistry{
		"Rose": {
			Name: "Rose", Heal: 15, Cooldown: 1000 * time.Millisecond, UseTime: 1000 * time.Millisecond, Mass: 0.2,
			Passive: PassiveHeal, PassiveAmount: 2, PassiveInterval: 1000 * time.Millisecond,
			Description: "Heals the flower over time.",
		},
		"Light": {
			Name: "Light", Damage: 5, Cooldown: 700 * time.Millisecond, UseTime: 700 * time.Millisecond, Mass: 0.3,
			OnAttack: true, Description: "Fast, weak shot.",
		},
		"Stinger": {
			Name: "Stinger", Damage: 20, Cooldown: 5000 * time.Millisecond, UseTime: 5000 * time.Millisecond, Mass: 0.7,
			OnAttack: true, Description: "Slow, heavy hit.",
		},
		"Pollen": {
			Name: "Pollen", Damage: 3, Cooldown: 1200 * time.Millisecond, UseTime: 300 * time.Millisecond, Mass: 0.25,
			Passive: PassiveAura, PassiveAmount: 2, PassiveInterval: 600 * time.Millisecond, PassiveRange: 20,
			Description: "Damages nearby mobs.",
		},
		"Missile": {
			Name: "Missile", Damage: 10, Cooldown: 1200 * time.Millisecond, UseTime: 400 * time.Millisecond, Mass: 1.0,
			OnAttack: true, Description: "Launches a heavy missile.",
		},
	}
}

// FallbackDamage returns the damage of an unregistered item by rarity
func FallbackDamage(rarity string) float64 {
	switch rarity {
	case "Rare":
		return 4
	case "Epic":
		return 8
	case "Legendary":
		return 16
	default:
		return 2
	}
}
