package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer() *Player {
	return NewPlayer(100, 100, DefaultPlayerStats())
}

func totalItems(p *Player) int {
	n := 0
	for _, it := range p.Inventory {
		n += it.Stack
	}
	for i := 0; i < SlotCount; i++ {
		if p.Equipped[i] != nil {
			n += p.Equipped[i].Stack
		}
		if p.Swap[i] != nil {
			n += p.Swap[i].Stack
		}
	}
	return n
}

func TestPlayer_AddItem_Merges(t *testing.T) {
	p := newTestPlayer()
	p.AddItem("Rose", "Common", 2)
	p.AddItem("Rose", "Common", 3)
	p.AddItem("Rose", "Rare", 1)
	p.AddItem("", "Common", 1)
	p.AddItem("Light", "Common", 0)

	require.Len(t, p.Inventory, 2)
	assert.Equal(t, Item{Type: "Rose", Rarity: "Common", Stack: 5}, p.Inventory[0])
	assert.Equal(t, Item{Type: "Rose", Rarity: "Rare", Stack: 1}, p.Inventory[1])
}

func TestPlayer_RemoveItem(t *testing.T) {
	p := newTestPlayer()
	p.AddItem("Light", "Common", 2)

	require.NoError(t, p.RemoveItem(0, 1))
	assert.Equal(t, 1, p.Inventory[0].Stack)

	assert.ErrorIs(t, p.RemoveItem(0, 5), ErrNoSuchItem)
	assert.ErrorIs(t, p.RemoveItem(3, 1), ErrNoSuchItem)

	require.NoError(t, p.RemoveItem(0, 1))
	assert.Empty(t, p.Inventory, "empty stacks are dropped")
}

func TestPlayer_EquipFromInventory(t *testing.T) {
	p := newTestPlayer()
	p.AddItem("Light", "Rare", 3)

	ref, err := p.EquipFromInventory(0)
	require.NoError(t, err)
	assert.Equal(t, SlotRef{Row: RowMain, Index: 0}, ref)
	assert.Equal(t, &Item{Type: "Light", Rarity: "Rare", Stack: 1}, p.Equipped[0])
	assert.Equal(t, 2, p.Inventory[0].Stack)
	assert.Equal(t, 3, totalItems(p), "equipping transfers, never duplicates")
}

func TestPlayer_EquipFromInventory_FallsBackToSwapRow(t *testing.T) {
	p := newTestPlayer()
	for i := range p.Equipped {
		p.Equipped[i] = &Item{Type: "Rose", Rarity: "Common", Stack: 1}
	}
	p.AddItem("Pollen", "Common", 1)

	ref, err := p.EquipFromInventory(0)
	require.NoError(t, err)
	assert.Equal(t, SlotRef{Row: RowSwap, Index: 0}, ref)
	assert.Empty(t, p.Inventory)
}

func TestPlayer_EquipFromInventory_NoFreeSlot(t *testing.T) {
	p := newTestPlayer()
	for i := 0; i < SlotCount; i++ {
		p.Equipped[i] = &Item{Type: "Rose", Rarity: "Common", Stack: 1}
		p.Swap[i] = &Item{Type: "Rose", Rarity: "Common", Stack: 1}
	}
	p.AddItem("Pollen", "Common", 1)

	_, err := p.EquipFromInventory(0)
	assert.ErrorIs(t, err, ErrNoFreeSlot)
	assert.Equal(t, 1, p.Inventory[0].Stack, "failed equip leaves the inventory untouched")

	_, err = p.EquipFromInventory(7)
	assert.ErrorIs(t, err, ErrNoSuchItem)
}

func TestPlayer_Unequip(t *testing.T) {
	p := newTestPlayer()
	p.Equipped[4] = &Item{Type: "Missile", Rarity: "Rare", Stack: 3}
	p.AddItem("Missile", "Rare", 1)

	item, err := p.Unequip(SlotRef{Row: RowMain, Index: 4})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Stack)
	assert.Nil(t, p.Equipped[4])
	require.Len(t, p.Inventory, 1)
	assert.Equal(t, 4, p.Inventory[0].Stack)

	_, err = p.Unequip(SlotRef{Row: RowMain, Index: 4})
	assert.ErrorIs(t, err, ErrEmptySlot)
	_, err = p.Unequip(SlotRef{Row: RowSwap, Index: 10})
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
}

func TestPlayer_SwapRows(t *testing.T) {
	p := newTestPlayer()
	main := &Item{Type: "Rose", Rarity: "Common", Stack: 1}
	alt := &Item{Type: "Light", Rarity: "Epic", Stack: 2}
	p.Equipped[2] = main
	p.Swap[2] = alt

	require.NoError(t, p.SwapRows(2))
	assert.Same(t, alt, p.Equipped[2])
	assert.Same(t, main, p.Swap[2])

	assert.ErrorIs(t, p.SwapRows(-1), ErrSlotOutOfRange)
}

func TestPlayer_MoveSlot(t *testing.T) {
	p := newTestPlayer()
	p.Equipped[0] = &Item{Type: "Rose", Rarity: "Common", Stack: 1}

	require.NoError(t, p.MoveSlot(SlotRef{Row: RowMain, Index: 0}, SlotRef{Row: RowSwap, Index: 5}))
	assert.Nil(t, p.Equipped[0])
	require.NotNil(t, p.Swap[5])
	assert.Equal(t, "Rose", p.Swap[5].Type)

	assert.ErrorIs(t, p.MoveSlot(SlotRef{Index: 0}, SlotRef{Index: 11}), ErrSlotOutOfRange)
}

func TestPlayer_Craft(t *testing.T) {
	p := newTestPlayer()
	p.AddItem("Light", "Common", 4)
	p.AddItem("Rose", "Unusual", 6)

	item, err := p.Craft()
	require.NoError(t, err)
	assert.Equal(t, Item{Type: "Rose", Rarity: "Rare", Stack: 1}, item)

	require.Len(t, p.Inventory, 3)
	assert.Equal(t, 4, p.Inventory[0].Stack)
	assert.Equal(t, 1, p.Inventory[1].Stack)
	assert.Equal(t, Item{Type: "Rose", Rarity: "Rare", Stack: 1}, p.Inventory[2])

	_, err = p.Craft()
	assert.ErrorIs(t, err, ErrNoCraftable)
}

func TestPlayer_Loadout_RoundTrip(t *testing.T) {
	p := newTestPlayer()
	p.AddItem("Air", "Common", 30)
	p.Equipped[1] = &Item{Type: "Light", Rarity: "Rare", Stack: 2}
	p.Swap[3] = &Item{Type: "Rose", Rarity: "Common", Stack: 1}

	l := p.Loadout()
	l.Equipped[1].Stack = 99
	assert.Equal(t, 2, p.Equipped[1].Stack, "loadout is a deep copy")

	q := newTestPlayer()
	l.Equipped[1].Stack = 2
	l.Swap[4] = &Item{Type: "Ghost", Stack: 0}
	q.ApplyLoadout(l)

	assert.Equal(t, p.Inventory, q.Inventory)
	assert.Equal(t, *p.Equipped[1], *q.Equipped[1])
	assert.Equal(t, *p.Swap[3], *q.Swap[3])
	assert.Nil(t, q.Swap[4], "zero stacks are dropped")
}
