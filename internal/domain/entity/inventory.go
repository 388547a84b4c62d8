package entity

import (
	"errors"
	"fmt"
)

// CraftCost is the number of items consumed to craft one of the next rarity
const CraftCost = 5

var (
	ErrSlotOutOfRange = errors.New("slot out of range")
	ErrEmptySlot      = errors.New("slot is empty")
	ErrNoFreeSlot     = errors.New("no free slot")
	ErrNoSuchItem     = errors.New("no such inventory item")
	ErrNoCraftable    = errors.New("nothing to craft")
)

// Row selects one of the two loadout rows
type Row int

const (
	RowMain Row = iota
	RowSwap
)

// SlotRef addresses a slot in the loadout
type SlotRef struct {
	Row   Row
	Index int
}

// Loadout is a copy of the player's items
type Loadout struct {
	Inventory []Item           `json:"inventory" msgpack:"inventory"`
	Equipped  [SlotCount]*Item `json:"equipped" msgpack:"equipped"`
	Swap      [SlotCount]*Item `json:"swap" msgpack:"swap"`
}

// AddItem merges count items into the inventory
func (p *Player) AddItem(itemType, rarity string, count int) {
	if count <= 0 || itemType == "" {
		return
	}
	for i := range p.Inventory {
		if p.Inventory[i].Matches(itemType, rarity) {
			p.Inventory[i].Stack += count
			return
		}
	}
	p.Inventory = append(p.Inventory, Item{Type: itemType, Rarity: rarity, Stack: count})
}

// RemoveItem takes count items from the inventory entry at index
func (p *Player) RemoveItem(index, count int) error {
	if index < 0 || index >= len(p.Inventory) {
		return fmt.Errorf("failed to remove item %d: %w", index, ErrNoSuchItem)
	}
	if p.Inventory[index].Stack < count {
		return fmt.Errorf("failed to remove %d of %s: %w", count, p.Inventory[index].Type, ErrNoSuchItem)
	}
	p.Inventory[index].Stack -= count
	if p.Inventory[index].Stack <= 0 {
		p.Inventory = append(p.Inventory[:index], p.Inventory[index+1:]...)
	}
	return nil
}

// Slot returns a pointer to the addressed slot
func (p *Player) Slot(ref SlotRef) (**Item, error) {
	if ref.Index < 0 || ref.Index >= SlotCount {
		return nil, fmt.Errorf("slot %d: %w", ref.Index, ErrSlotOutOfRange)
	}
	if ref.Row == RowSwap {
		return &p.Swap[ref.Index], nil
	}
	return &p.Equipped[ref.Index], nil
}

// EquipFromInventory moves one item from the inventory entry at index into
// the first empty main slot, or the first empty swap slot when the main row is full.
func (p *Player) EquipFromInventory(index int) (SlotRef, error) {
	if index < 0 || index >= len(p.Inventory) {
		return SlotRef{}, fmt.Errorf("failed to equip item %d: %w", index, ErrNoSuchItem)
	}

	ref, ok := p.firstFree()
	if !ok {
		return SlotRef{}, fmt.Errorf("failed to equip %s: %w", p.Inventory[index].Type, ErrNoFreeSlot)
	}

	item := p.Inventory[index]
	if err := p.RemoveItem(index, 1); err != nil {
		return SlotRef{}, err
	}
	slot, _ := p.Slot(ref)
	*slot = &Item{Type: item.Type, Rarity: item.Rarity, Stack: 1}
	return ref, nil
}

func (p *Player) firstFree() (SlotRef, bool) {
	for i, it := range p.Equipped {
		if it == nil {
			return SlotRef{Row: RowMain, Index: i}, true
		}
	}
	for i, it := range p.Swap {
		if it == nil {
			return SlotRef{Row: RowSwap, Index: i}, true
		}
	}
	return SlotRef{}, false
}

// Unequip returns the whole stack in the slot to the inventory
func (p *Player) Unequip(ref SlotRef) (Item, error) {
	slot, err := p.Slot(ref)
	if err != nil {
		return Item{}, fmt.Errorf("failed to unequip: %w", err)
	}
	if *slot == nil {
		return Item{}, fmt.Errorf("failed to unequip slot %d: %w", ref.Index, ErrEmptySlot)
	}
	item := **slot
	*slot = nil
	p.AddItem(item.Type, item.Rarity, item.Stack)
	return item, nil
}

// SwapRows exchanges the main and swap slots at index
func (p *Player) SwapRows(index int) error {
	if index < 0 || index >= SlotCount {
		return fmt.Errorf("failed to swap slot %d: %w", index, ErrSlotOutOfRange)
	}
	p.Equipped[index], p.Swap[index] = p.Swap[index], p.Equipped[index]
	return nil
}

// MoveSlot exchanges the contents of two slots
func (p *Player) MoveSlot(from, to SlotRef) error {
	a, err := p.Slot(from)
	if err != nil {
		return fmt.Errorf("failed to move slot: %w", err)
	}
	b, err := p.Slot(to)
	if err != nil {
		return fmt.Errorf("failed to move slot: %w", err)
	}
	*a, *b = *b, *a
	return nil
}

// Craft turns CraftCost items of the first eligible stack into one of the next rarity
func (p *Player) Craft() (Item, error) {
	for i, it := range p.Inventory {
		if it.Stack < CraftCost {
			continue
		}
		next, ok := NextRarity(it.Rarity)
		if !ok {
			continue
		}
		if err := p.RemoveItem(i, CraftCost); err != nil {
			return Item{}, err
		}
		p.AddItem(it.Type, next, 1)
		return Item{Type: it.Type, Rarity: next, Stack: 1}, nil
	}
	return Item{}, ErrNoCraftable
}

// Loadout returns a deep copy of the player's items
func (p *Player) Loadout() Loadout {
	l := Loadout{Inventory: append([]Item(nil), p.Inventory...)}
	for i := 0; i < SlotCount; i++ {
		if it := p.Equipped[i]; it != nil {
			c := *it
			l.Equipped[i] = &c
		}
		if it := p.Swap[i]; it != nil {
			c := *it
			l.Swap[i] = &c
		}
	}
	return l
}

// ApplyLoadout replaces the player's items with a copy of l.
// Empty or zero-stack entries are dropped.
func (p *Player) ApplyLoadout(l Loadout) {
	p.Inventory = p.Inventory[:0]
	for _, it := range l.Inventory {
		if it.Stack > 0 && it.Type != "" {
			p.Inventory = append(p.Inventory, it)
		}
	}
	for i := 0; i < SlotCount; i++ {
		p.Equipped[i] = copyItem(l.Equipped[i])
		p.Swap[i] = copyItem(l.Swap[i])
	}
}

func copyItem(it *Item) *Item {
	if it == nil || it.Stack <= 0 || it.Type == "" {
		return nil
	}
	c := *it
	return &c
}
