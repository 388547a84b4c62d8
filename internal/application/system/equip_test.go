package system

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

func createTestEquip(items entity.ItemRegistry) *EquipSystem {
	if items == nil {
		items = entity.DefaultItems()
	}
	return NewEquipSystem(items, &createTestGameConfig().Tuning.Combat, nil)
}

func TestEquipSystem_UseNext(t *testing.T) {
	t.Run("heal item heals and consumes a unit", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)
		p := w.Player
		p.Health = 50
		p.Equipped[0] = &entity.Item{Type: "Rose", Rarity: "Common", Stack: 2}

		assert.True(t, equip.UseNext(w, 0, 0, false))
		assert.Equal(t, 65.0, p.Health)
		assert.Equal(t, 1, p.Equipped[0].Stack)

		assert.False(t, equip.UseNext(w, 0, 0, false), "rose is cooling down")

		w.Now = time.Second
		assert.True(t, equip.UseNext(w, 0, 0, false))
		assert.Nil(t, p.Equipped[0], "emptied slot is cleared")
	})

	t.Run("shots fly along +X without aim", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)
		w.Player.Equipped[0] = &entity.Item{Type: "Light", Rarity: "Common", Stack: 1}

		require.True(t, equip.UseNext(w, 0, 0, false))

		require.Len(t, w.Projectiles, 1)
		shot := w.Projectiles[0]
		assert.Equal(t, 5.0, shot.Damage)
		assert.Greater(t, shot.DX, 0.0)
		assert.InDelta(t, 0.0, shot.DY, 1e-9)
		assert.Equal(t, 0.3, shot.Mass)
		assert.Equal(t, 1, w.Player.NextUse)
	})

	t.Run("shots aim at the pointer", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)
		w.Player.Equipped[0] = &entity.Item{Type: "Light", Rarity: "Common", Stack: 1}

		require.True(t, equip.UseNext(w, w.Player.X, 0, true))

		assert.Less(t, w.Projectiles[0].DY, 0.0)
	})

	t.Run("round robin across slots", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)
		p := w.Player
		p.Equipped[0] = &entity.Item{Type: "Light", Rarity: "Common", Stack: 5}
		p.Equipped[2] = &entity.Item{Type: "Stinger", Rarity: "Common", Stack: 5}

		require.True(t, equip.UseNext(w, 0, 0, false))
		require.True(t, equip.UseNext(w, 0, 0, false))

		require.Len(t, w.Projectiles, 2)
		assert.Equal(t, "Light", w.Projectiles[0].Type)
		assert.Equal(t, "Stinger", w.Projectiles[1].Type)
		assert.Equal(t, 3, p.NextUse)
		assert.False(t, equip.UseNext(w, 0, 0, false))
	})

	t.Run("unknown items use rarity damage", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)
		w.Player.Equipped[4] = &entity.Item{Type: "Mystery", Rarity: "Rare", Stack: 1}

		require.True(t, equip.UseNext(w, 0, 0, false))
		assert.Equal(t, 4.0, w.Projectiles[0].Damage)
	})

	t.Run("nothing equipped", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)

		assert.False(t, equip.UseNext(w, 0, 0, false))
	})
}

func TestEquipSystem_Attack(t *testing.T) {
	w := createTestWorld()
	equip := createTestEquip(nil)
	NewPetalSystem(&createTestGameConfig().Tuning.Player).Refresh(w)
	p := w.Player
	p.Equipped[0] = &entity.Item{Type: "Light", Rarity: "Common", Stack: 1}
	p.Equipped[1] = &entity.Item{Type: "Stinger", Rarity: "Common", Stack: 1}
	p.Equipped[2] = &entity.Item{Type: "Rose", Rarity: "Common", Stack: 1}

	assert.Equal(t, 2, equip.Attack(w, 900, 320))
	assert.Equal(t, 1, p.Equipped[0].Stack, "attacks do not consume")
	assert.Equal(t, 220*time.Millisecond, w.Petals[0].ExpandUntil)
	assert.Equal(t, 48.0, w.Petals[0].ExpandExtra)

	assert.Equal(t, 0, equip.Attack(w, 900, 320))

	w.Now = 700 * time.Millisecond
	assert.Equal(t, 1, equip.Attack(w, 900, 320))
	assert.Equal(t, "Light", w.Projectiles[2].Type)
}

func TestEquipSystem_ApplyPassive(t *testing.T) {
	t.Run("heal over time", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)
		p := w.Player
		p.Health = 50
		p.Equipped[3] = &entity.Item{Type: "Rose", Rarity: "Common", Stack: 1}

		equip.ApplyPassive(w)
		equip.ApplyPassive(w)
		assert.Equal(t, 52.0, p.Health)

		w.Now = time.Second
		equip.ApplyPassive(w)
		assert.Equal(t, 54.0, p.Health)
	})

	t.Run("aura damages nearby mobs", func(t *testing.T) {
		w := createTestWorld()
		equip := createTestEquip(nil)
		p := w.Player
		p.Equipped[0] = &entity.Item{Type: "Pollen", Rarity: "Common", Stack: 1}
		near := createTestMob(w, "ladybug", p.X+40, p.Y, 10)
		far := createTestMob(w, "ladybug", p.X+60, p.Y, 10)
		chain := createTestChain(w, p.X+10, p.Y, 2, 5)

		equip.ApplyPassive(w)

		assert.Equal(t, 8.0, near.Health)
		assert.Equal(t, 10.0, far.Health)
		assert.Equal(t, 5.0, chain.Segments[0].HP)
	})
}

func TestEquipSystem_Hooks(t *testing.T) {
	setup := func() (*World, *EquipSystem, *[]string) {
		items := entity.DefaultItems()
		stinger := items["Stinger"]
		stinger.OnEquip = "arm"
		stinger.OnUnequip = "disarm"
		items["Stinger"] = stinger

		var calls []string
		equip := createTestEquip(items)
		equip.Hooks().Register("arm", func(p *entity.Player, ref entity.SlotRef, item entity.Item) error {
			calls = append(calls, "arm")
			return nil
		})
		equip.Hooks().Register("disarm", func(p *entity.Player, ref entity.SlotRef, item entity.Item) error {
			calls = append(calls, "disarm")
			return nil
		})
		return createTestWorld(), equip, &calls
	}

	t.Run("equip into the main row", func(t *testing.T) {
		w, equip, calls := setup()
		w.Player.AddItem("Stinger", "Common", 2)

		ref, err := equip.Equip(w, 0)
		require.NoError(t, err)

		assert.Equal(t, entity.SlotRef{Row: entity.RowMain, Index: 0}, ref)
		assert.Equal(t, []string{"arm"}, *calls)
		assert.Equal(t, 1, w.Player.Inventory[0].Stack)
	})

	t.Run("equip into the swap row runs nothing", func(t *testing.T) {
		w, equip, calls := setup()
		for i := range w.Player.Equipped {
			w.Player.Equipped[i] = &entity.Item{Type: "Rose", Rarity: "Common", Stack: 1}
		}
		w.Player.AddItem("Stinger", "Common", 1)

		ref, err := equip.Equip(w, 0)
		require.NoError(t, err)

		assert.Equal(t, entity.RowSwap, ref.Row)
		assert.Empty(t, *calls)
	})

	t.Run("swapping rows runs leave then enter", func(t *testing.T) {
		w, equip, calls := setup()
		p := w.Player
		p.Equipped[0] = &entity.Item{Type: "Stinger", Rarity: "Common", Stack: 1}
		p.Swap[0] = &entity.Item{Type: "Stinger", Rarity: "Rare", Stack: 1}

		require.NoError(t, equip.SwapRows(w, 0))

		assert.Equal(t, "Rare", p.Equipped[0].Rarity)
		assert.Equal(t, "Common", p.Swap[0].Rarity)
		assert.Equal(t, []string{"disarm", "arm"}, *calls)
	})

	t.Run("moving within a row runs nothing", func(t *testing.T) {
		w, equip, calls := setup()
		w.Player.Equipped[0] = &entity.Item{Type: "Stinger", Rarity: "Common", Stack: 1}

		err := equip.MoveSlot(w,
			entity.SlotRef{Row: entity.RowMain, Index: 0},
			entity.SlotRef{Row: entity.RowMain, Index: 5})
		require.NoError(t, err)

		assert.Nil(t, w.Player.Equipped[0])
		assert.NotNil(t, w.Player.Equipped[5])
		assert.Empty(t, *calls)
	})

	t.Run("unequip from the main row", func(t *testing.T) {
		w, equip, calls := setup()
		w.Player.Equipped[1] = &entity.Item{Type: "Stinger", Rarity: "Common", Stack: 3}

		require.NoError(t, equip.Unequip(w, entity.SlotRef{Row: entity.RowMain, Index: 1}))

		assert.Equal(t, []string{"disarm"}, *calls)
		require.Len(t, w.Player.Inventory, 1)
		assert.Equal(t, 3, w.Player.Inventory[0].Stack)
	})

	t.Run("failing hook is reported and the change stands", func(t *testing.T) {
		w, equip, _ := setup()
		boom := errors.New("boom")
		equip.Hooks().Register("arm", func(*entity.Player, entity.SlotRef, entity.Item) error { return boom })
		var reported error
		equip.OnHookError = func(err error) { reported = err }
		w.Player.AddItem("Stinger", "Common", 1)

		_, err := equip.Equip(w, 0)

		require.NoError(t, err)
		assert.ErrorIs(t, reported, boom)
		assert.NotNil(t, w.Player.Equipped[0])
	})

	t.Run("out of range slot", func(t *testing.T) {
		w, equip, _ := setup()

		err := equip.SwapRows(w, entity.SlotCount)
		assert.ErrorIs(t, err, entity.ErrSlotOutOfRange)
	})
}
