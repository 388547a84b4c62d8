package system

import "github.com/younwookim/petalarena/internal/domain/entity"

// Intent represents a discrete player action applied between ticks
type Intent interface {
	isIntent()
}

// AttackIntent fires every ready on-attack petal at a point
type AttackIntent struct {
	X, Y float64
}

func (AttackIntent) isIntent() {}

// UseItemIntent fires the next ready equipped item
type UseItemIntent struct {
	AimX, AimY float64
	HasAim     bool
}

func (UseItemIntent) isIntent() {}

// SwapRowIntent exchanges the main and swap slot at Index
type SwapRowIntent struct {
	Index int
}

func (SwapRowIntent) isIntent() {}

// EquipIntent moves one unit from the inventory into the first free slot
type EquipIntent struct {
	InventoryIndex int
}

func (EquipIntent) isIntent() {}

// UnequipIntent returns a slot's contents to the inventory
type UnequipIntent struct {
	Ref entity.SlotRef
}

func (UnequipIntent) isIntent() {}

// MoveSlotIntent swaps the contents of two slots
type MoveSlotIntent struct {
	From, To entity.SlotRef
}

func (MoveSlotIntent) isIntent() {}

// CraftIntent combines inventory stacks into the next rarity
type CraftIntent struct{}

func (CraftIntent) isIntent() {}

// RespawnIntent restarts a dead run at the current wave
type RespawnIntent struct{}

func (RespawnIntent) isIntent() {}

// CommandIntent runs a debug console line such as "$setwave 3"
type CommandIntent struct {
	Line string
}

func (CommandIntent) isIntent() {}

// IntentsFrom extracts the one-shot actions carried by a frame of input
func IntentsFrom(in InputState) []Intent {
	var intents []Intent
	if in.Attack {
		intents = append(intents, AttackIntent{X: in.PointerX, Y: in.PointerY})
	}
	if in.Use {
		intents = append(intents, UseItemIntent{AimX: in.PointerX, AimY: in.PointerY, HasAim: in.HasPointer})
	}
	if in.SwapSlot != NoSlot {
		intents = append(intents, SwapRowIntent{Index: in.SwapSlot})
	}
	return intents
}
