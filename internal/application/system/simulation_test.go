package system

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

const testFrame = 16 * time.Millisecond

func createTestSimulation() *Simulation {
	return NewSimulation(createTestGameConfig(), Options{Seed: 12345})
}

func TestNewSimulation(t *testing.T) {
	s := createTestSimulation()

	assert.NotEqual(t, uuid.Nil, s.RunID)
	assert.Equal(t, 1, s.World.Wave)
	assert.Equal(t, 480.0, s.World.Player.X)
	assert.NotEmpty(t, s.Items())

	t.Run("restores a saved loadout", func(t *testing.T) {
		loadout := entity.Loadout{Inventory: []entity.Item{{Type: "Rose", Rarity: "Common", Stack: 3}}}
		loadout.Equipped[0] = &entity.Item{Type: "Light", Rarity: "Rare", Stack: 1}

		s := NewSimulation(nil, Options{Loadout: &loadout})

		assert.Equal(t, "Light", s.World.Player.Equipped[0].Type)
		assert.Equal(t, 3, s.World.Player.Inventory[0].Stack)
	})
}

func TestSimulation_Tick(t *testing.T) {
	t.Run("advances the clock and trickles spawns", func(t *testing.T) {
		s := createTestSimulation()
		s.World.Player.Godmode = true
		s.Start()
		spacing := createTestGameConfig().Tuning.Spawn.Spacing(1)

		s.Tick(Idle(), spacing)

		assert.Equal(t, 1, s.World.Frame)
		assert.Equal(t, spacing, s.World.Now)
		assert.Len(t, s.World.Mobs, 1)
		assert.Len(t, s.World.Petals, 10)
	})

	t.Run("wave does not advance while spawns are pending", func(t *testing.T) {
		s := createTestSimulation()
		s.Start()
		s.World.Mobs = nil

		s.Tick(Idle(), time.Millisecond)

		assert.Equal(t, 1, s.World.Wave)
	})

	t.Run("cleared wave starts the next one", func(t *testing.T) {
		s := createTestSimulation()
		s.Start()
		s.scheduler.Cancel()
		s.World.Mobs = nil

		s.Tick(Idle(), time.Millisecond)

		assert.Equal(t, 2, s.World.Wave)
		assert.True(t, s.scheduler.Pending())
		assert.Equal(t, createTestGameConfig().Tuning.Spawn.BatchSize(2), s.scheduler.Remaining())
	})

	t.Run("dead world is frozen", func(t *testing.T) {
		s := createTestSimulation()
		s.World.Dead = true

		s.Tick(Idle(), testFrame)

		assert.Equal(t, 0, s.World.Frame)
	})

	t.Run("shot kills a mob and leaves its drop", func(t *testing.T) {
		s := createTestSimulation()
		w := s.World
		m := entity.NewMob(w.NextID(), w.Player.X+60, w.Player.Y, "ladybug")
		m.Name = "Ladybug"
		m.Radius = 10
		m.Health, m.MaxHealth = 1, 1
		m.Behavior = &entity.StationaryBehavior{}
		m.Drops = []string{"Light"}
		w.AddMob(m)
		w.Player.Equipped[0] = &entity.Item{Type: "Light", Rarity: "Common", Stack: 1}

		require.NoError(t, s.Apply(UseItemIntent{}))
		for i := 0; i < 30 && len(w.Drops) == 0; i++ {
			s.Tick(Idle(), testFrame)
		}

		require.Len(t, w.Drops, 1)
		assert.Equal(t, m.X, w.Drops[0].X)
		assert.Equal(t, m.Y, w.Drops[0].Y)
		assert.Equal(t, 1, w.Player.Kills["Ladybug"])
		assert.Nil(t, w.Player.Equipped[0])
	})
}

func TestSimulation_Death(t *testing.T) {
	s := createTestSimulation()
	var diedAt []int
	s.OnPlayerDeath = func(wave int) { diedAt = append(diedAt, wave) }
	w := s.World
	w.Player.Health = 0.5
	m := entity.NewMob(w.NextID(), w.Player.X+10, w.Player.Y, "bee")
	m.Radius = 10
	m.Health = 100
	m.Behavior = &entity.StationaryBehavior{}
	w.AddMob(m)

	s.Tick(Idle(), testFrame)

	require.True(t, w.Dead)
	assert.Equal(t, []int{1}, diedAt)

	t.Run("respawn restarts the current wave", func(t *testing.T) {
		w.Wave = 4
		w.Player.Equipped[2] = &entity.Item{Type: "Rose", Rarity: "Common", Stack: 1}

		require.NoError(t, s.Apply(RespawnIntent{}))

		assert.False(t, w.Dead)
		assert.Equal(t, 4, w.Wave)
		assert.Equal(t, w.Player.MaxHealth, w.Player.Health)
		assert.Empty(t, w.Mobs)
		assert.True(t, s.scheduler.Pending())
		assert.NotNil(t, w.Player.Equipped[2], "loadout survives")
	})

	t.Run("respawn while alive", func(t *testing.T) {
		assert.ErrorIs(t, s.Respawn(), ErrNotDead)
	})
}

func TestSimulation_Apply(t *testing.T) {
	t.Run("loadout changes are published", func(t *testing.T) {
		s := createTestSimulation()
		var published []entity.Loadout
		s.OnInventoryChange = func(l entity.Loadout) { published = append(published, l) }
		s.World.Player.AddItem("Rose", "Common", 1)

		require.NoError(t, s.Apply(EquipIntent{InventoryIndex: 0}))
		require.NoError(t, s.Apply(SwapRowIntent{Index: 0}))

		require.Len(t, published, 2)
		require.NotNil(t, published[0].Equipped[0])
		assert.Equal(t, "Rose", published[0].Equipped[0].Type)
		assert.Nil(t, published[1].Equipped[0])
		assert.NotNil(t, published[1].Swap[0])
	})

	t.Run("rejected changes are not published", func(t *testing.T) {
		s := createTestSimulation()
		calls := 0
		s.OnInventoryChange = func(entity.Loadout) { calls++ }

		err := s.Apply(UnequipIntent{Ref: entity.SlotRef{Row: entity.RowMain, Index: 0}})

		assert.ErrorIs(t, err, entity.ErrEmptySlot)
		assert.Zero(t, calls)
	})

	t.Run("crafting", func(t *testing.T) {
		s := createTestSimulation()
		s.World.Player.AddItem("Light", "Common", entity.CraftCost)

		require.NoError(t, s.Apply(CraftIntent{}))
		assert.ErrorIs(t, s.Apply(CraftIntent{}), entity.ErrNoCraftable)
	})

	t.Run("attack fires on-attack petals", func(t *testing.T) {
		s := createTestSimulation()
		s.World.Player.Equipped[0] = &entity.Item{Type: "Missile", Rarity: "Common", Stack: 1}

		require.NoError(t, s.Apply(AttackIntent{X: 900, Y: 320}))

		require.Len(t, s.World.Projectiles, 1)
		assert.Equal(t, 1.0, s.World.Projectiles[0].Mass)
	})
}

func TestSimulation_Snapshot(t *testing.T) {
	s := createTestSimulation()
	s.World.Player.Kills["Bee"] = 2

	snap := s.Snapshot()
	snap.Kills["Bee"] = 99

	assert.Equal(t, s.RunID, snap.RunID)
	assert.Equal(t, 2, s.World.Player.Kills["Bee"])
	assert.Equal(t, 100.0, snap.Health)
}

type memorySink struct {
	saved []entity.Loadout
	err   error
}

func (s *memorySink) SaveLoadout(l entity.Loadout) error {
	s.saved = append(s.saved, l)
	return s.err
}

func TestSimulation_Sink(t *testing.T) {
	sink := &memorySink{}
	s := NewSimulation(createTestGameConfig(), Options{Sink: sink})
	s.World.Player.AddItem("Rose", "Common", 1)

	require.NoError(t, s.Apply(EquipIntent{InventoryIndex: 0}))

	require.Len(t, sink.saved, 1)
	assert.Equal(t, "Rose", sink.saved[0].Equipped[0].Type)
	assert.Empty(t, sink.saved[0].Inventory)
}

func TestSimulation_FaultLogsBehavior(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s := NewSimulation(createTestGameConfig(), Options{Seed: 12345, Logger: &logger})

	broken := entity.NewMob(s.World.NextID(), 100, 100, "ant")
	broken.Name = "Ant"
	broken.Behavior = (*entity.PatrolBehavior)(nil)
	s.World.AddMob(broken)

	assert.NotPanics(t, func() { s.Tick(Idle(), testFrame) })
	assert.Contains(t, buf.String(), `"message":"mob update failed"`)
	assert.Contains(t, buf.String(), `"behavior":"Patrol"`)
	assert.Contains(t, buf.String(), `"mob":"Ant"`)
}
