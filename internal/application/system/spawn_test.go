package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

func loadTestGameConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.NewLoader("../../../cmd/game/configs").LoadAll()
	require.NoError(t, err)
	return cfg
}

func createTestFactory(cfg *config.GameConfig, w *World) *MobFactory {
	return NewMobFactory(cfg, w.Arena, testRNG(), w.NextID)
}

func templateByID(t *testing.T, cfg *config.GameConfig, id string) *config.MobTemplate {
	t.Helper()
	for i := range cfg.Mobs.Mobs {
		if cfg.Mobs.Mobs[i].ID == id {
			return &cfg.Mobs.Mobs[i]
		}
	}
	t.Fatalf("template %s not found", id)
	return nil
}

func TestWaveScheduler(t *testing.T) {
	batch := []SpawnDescriptor{{X: 1}, {X: 2}, {X: 3}}

	t.Run("trickles one spawn per interval", func(t *testing.T) {
		var s WaveScheduler
		s.Start(batch, 100*time.Millisecond)

		assert.Empty(t, s.Advance(50*time.Millisecond))
		due := s.Advance(50 * time.Millisecond)
		require.Len(t, due, 1)
		assert.Equal(t, 1.0, due[0].X)

		due = s.Advance(200 * time.Millisecond)
		require.Len(t, due, 2)
		assert.Equal(t, 0, s.Remaining())
		assert.True(t, s.Pending(), "stays pending one interval after the last spawn")

		assert.Empty(t, s.Advance(100*time.Millisecond))
		assert.False(t, s.Pending())
	})

	t.Run("start replaces the pending schedule", func(t *testing.T) {
		var s WaveScheduler
		s.Start(batch, 100*time.Millisecond)
		s.Advance(150 * time.Millisecond)

		s.Start(batch[:1], 10*time.Millisecond)

		assert.Equal(t, 1, s.Remaining())
		due := s.Advance(10 * time.Millisecond)
		require.Len(t, due, 1)
		assert.Equal(t, 1.0, due[0].X)
	})

	t.Run("cancel stops everything", func(t *testing.T) {
		var s WaveScheduler
		s.Start(batch, 100*time.Millisecond)
		s.Cancel()

		assert.False(t, s.Pending())
		assert.Empty(t, s.Advance(time.Second))
	})
}

func TestMobFactory_Roll(t *testing.T) {
	t.Run("fallback batch", func(t *testing.T) {
		w := createTestWorld()
		cfg := createTestGameConfig()
		factory := createTestFactory(cfg, w)

		batch := factory.Roll(1)

		assert.Len(t, batch, cfg.Tuning.Spawn.BatchSize(1))
		for _, d := range batch {
			assert.Nil(t, d.Template)
			assert.True(t, w.Arena.Contains(d.X, d.Y, 0))
			assert.Equal(t, entity.RarityName(d.RarityIndex), d.RarityName)
			assert.Equal(t, 1, d.Wave)
		}
	})

	t.Run("base rarity raises the roll", func(t *testing.T) {
		w := createTestWorld()
		cfg := loadTestGameConfig(t)
		spider := *templateByID(t, cfg, "spider")
		cfg.Mobs.Mobs = []config.MobTemplate{spider}
		factory := createTestFactory(cfg, w)

		for _, d := range factory.Roll(1) {
			assert.GreaterOrEqual(t, d.RarityIndex, 1)
			assert.Equal(t, "spider", d.Template.ID)
		}
	})
}

func TestMobFactory_Build(t *testing.T) {
	w := createTestWorld()
	cfg := loadTestGameConfig(t)
	factory := createTestFactory(cfg, w)

	build := func(id string, rarity int) *entity.Mob {
		name, mult := factory.tier(rarity)
		return factory.Build(SpawnDescriptor{
			Template:    templateByID(t, cfg, id),
			X:           300,
			Y:           300,
			RarityIndex: rarity,
			RarityName:  name,
			Multiplier:  mult,
			Wave:        1,
		})
	}

	t.Run("scales template stats", func(t *testing.T) {
		m := build("ladybug", 0)

		assert.Equal(t, "Ladybug", m.Name)
		assert.Equal(t, "ladybug", m.Type)
		assert.Equal(t, 52.0, m.Health)
		assert.Equal(t, 12.0, m.Radius)
		assert.Equal(t, 2.0, m.Damage)
		assert.InDelta(t, 1.6, m.Speed, 1e-9)
		assert.Equal(t, []string{"Rose", "Light"}, m.Drops)
		assert.True(t, m.TemplateDrops)
		assert.IsType(t, &entity.WanderBehavior{}, m.Behavior)
	})

	t.Run("hornet shoots", func(t *testing.T) {
		m := build("hornet", 0)

		b, ok := m.Behavior.(*entity.RangedBehavior)
		require.True(t, ok)
		assert.Equal(t, 120, b.Reset)
	})

	t.Run("centipede is a chain", func(t *testing.T) {
		m := build("centipede", 0)

		assert.True(t, m.IsChain())
		require.Len(t, m.Segments, 8)
		assert.Equal(t, 9999.0, m.Mass)
		ids := make(map[entity.EntityID]bool)
		for _, seg := range m.Segments {
			ids[seg.ID] = true
			assert.Equal(t, 300.0, seg.Y)
		}
		assert.Len(t, ids, 8)
		assert.Equal(t, m.Segments[0].X, m.X)
	})

	t.Run("stationary template", func(t *testing.T) {
		m := build("dandelion", 0)

		assert.True(t, m.Stationary)
		assert.IsType(t, &entity.StationaryBehavior{}, m.Behavior)
	})

	t.Run("ants patrol", func(t *testing.T) {
		m := build("ant", 0)

		b, ok := m.Behavior.(*entity.PatrolBehavior)
		require.True(t, ok)
		assert.Equal(t, 72.0, b.Range)
		assert.Equal(t, 300.0, b.Center)
		assert.Equal(t, "mandible", m.SpriteKey)
	})

	t.Run("burrow tracks damage", func(t *testing.T) {
		m := build("ant-burrow", 0)

		require.NotNil(t, m.Burrow)
		assert.Equal(t, m.MaxHealth, m.Burrow.LastHealth)
		assert.IsType(t, &entity.StationaryBehavior{}, m.Behavior)
	})

	t.Run("higher rarity is tougher", func(t *testing.T) {
		common := build("snail", 0)
		epic := build("snail", 3)

		assert.Greater(t, epic.Health, common.Health)
		assert.Greater(t, epic.Radius, common.Radius)
		assert.Equal(t, "Epic", epic.RarityName)
	})
}

func TestMobFactory_Fallback(t *testing.T) {
	w := createTestWorld()
	factory := createTestFactory(createTestGameConfig(), w)
	drops := map[string][]string{
		"Ladybug":   {"Rose", "Light"},
		"Bee":       {"Stinger", "Pollen"},
		"Hornet":    {"Missile"},
		"Dandelion": nil,
	}

	for i := 0; i < 40; i++ {
		m := factory.Build(SpawnDescriptor{X: 100, Y: 100, RarityName: "Common", Multiplier: 1})
		want, ok := drops[m.Name]
		require.True(t, ok, "unexpected archetype %s", m.Name)
		assert.Equal(t, want, m.Drops)
		assert.Greater(t, m.Health, 0.0)
		if m.Name == "Dandelion" {
			assert.True(t, m.Stationary)
		}
	}
}

func TestMobFactory_Brood(t *testing.T) {
	w := createTestWorld()
	cfg := createTestGameConfig()
	factory := createTestFactory(cfg, w)

	worker := factory.Brood(cfg.Mobs.Brood.Worker, 200, 200, 0)
	assert.Equal(t, "Worker Ant", worker.Name)
	assert.Equal(t, "worker-ant", worker.Type)
	assert.Equal(t, 40.0, worker.Health)
	assert.Equal(t, 200.0, worker.X)

	ant := factory.Brood(cfg.Mobs.Brood.Ant, 200, 200, 20)
	assert.IsType(t, &entity.PatrolBehavior{}, ant.Behavior)
	assert.InDelta(t, 200, ant.X, 20)
	assert.InDelta(t, 200, ant.Y, 20)

	queen := factory.Brood(cfg.Mobs.Brood.Queen, 200, 200, 0)
	assert.Equal(t, "Rare", queen.RarityName)
}

func TestMobFactory_Named(t *testing.T) {
	w := createTestWorld()
	cfg := loadTestGameConfig(t)
	factory := createTestFactory(cfg, w)

	t.Run("spawns near the point with rarity stats", func(t *testing.T) {
		m, err := factory.Named("Spider", "Rare", 480, 320)
		require.NoError(t, err)

		assert.Equal(t, 13.0, m.Radius)
		assert.Equal(t, 72.0, m.Health)
		assert.Equal(t, "Rare", m.RarityName)
		assert.Equal(t, []string{"Stinger"}, m.Drops)
		assert.InDelta(t, 480, m.X, 200)
		assert.InDelta(t, 320, m.Y, 200)
	})

	t.Run("centipede becomes a chain", func(t *testing.T) {
		m, err := factory.Named("centipede", "Common", 480, 320)
		require.NoError(t, err)
		assert.True(t, m.IsChain())
	})

	t.Run("unknown rarity", func(t *testing.T) {
		_, err := factory.Named("bee", "Shiny", 480, 320)
		assert.ErrorIs(t, err, ErrUnknownRarity)
	})
}
