package domain

import "fmt"

// EquipSlot is a named equipment position. At most one item may occupy a
// given slot for a given player. SlotNone marks consumables and materials.
type EquipSlot string

const (
	SlotHead      EquipSlot = "head"
	SlotTorso     EquipSlot = "torso"
	SlotMainHand  EquipSlot = "mainHand"
	SlotOffHand   EquipSlot = "offHand"
	SlotBelt      EquipSlot = "belt"
	SlotLegs      EquipSlot = "legs"
	SlotBoots     EquipSlot = "boots"
	SlotAccessory EquipSlot = "accessory"
	SlotNone      EquipSlot = "none"
)

// ParseEquipSlot validates a string slot value at the catalog boundary.
func ParseEquipSlot(s string) (EquipSlot, error) {
	switch EquipSlot(s) {
	case SlotHead, SlotTorso, SlotMainHand, SlotOffHand,
		SlotBelt, SlotLegs, SlotBoots, SlotAccessory, SlotNone:
		return EquipSlot(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSlot, s)
	}
}

// StatBonuses are the stat modifiers an equipped item contributes.
type StatBonuses struct {
	MaxHealth int `json:"max_health,omitempty"`
	Attack    int `json:"attack,omitempty"`
	Defense   int `json:"defense,omitempty"`
	Speed     int `json:"speed,omitempty"`
}

// Item is an immutable catalog entry keyed by Code. Never mutated after
// seeding.
type Item struct {
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Slot          EquipSlot    `json:"slot"`
	Bonuses       StatBonuses  `json:"bonuses"`
	Price         int          `json:"price"`
	PriceCurrency CurrencyKind `json:"price_currency"`
}

// Equippable reports whether the item occupies an equipment slot.
func (i Item) Equippable() bool {
	return i.Slot != SlotNone
}

// ItemGrant is a single item reward inside a RewardIntent.
type ItemGrant struct {
	ItemCode string `json:"item_code"`
	Quantity int    `json:"quantity"`
}
