package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

func TestLoadItems(t *testing.T) {
	t.Run("nil config uses built-in items", func(t *testing.T) {
		assert.Equal(t, entity.DefaultItems(), LoadItems(nil))
	})

	t.Run("converts config entries", func(t *testing.T) {
		items := LoadItems(&config.ItemsConfig{Items: []config.ItemConfig{
			{Name: "Pollen", Damage: 3, CooldownMs: 1200, Passive: "aura", PassiveAmount: 2, PassiveIntervalMs: 600, PassiveRange: 20},
			{Name: "Rose", Heal: 15, CooldownMs: 1000, Passive: "HEAL", PassiveAmount: 2, PassiveIntervalMs: 1000},
			{Name: "Light", Damage: 5, OnAttack: true, OnEquip: "glow"},
			{Name: ""},
		}})

		require.Len(t, items, 3)
		pollen := items["Pollen"]
		assert.Equal(t, entity.PassiveAura, pollen.Passive)
		assert.Equal(t, 600*time.Millisecond, pollen.PassiveInterval)
		assert.Equal(t, 1200*time.Millisecond, pollen.Cooldown)
		assert.Equal(t, entity.PassiveHeal, items["Rose"].Passive)
		assert.True(t, items["Light"].OnAttack)
		assert.Equal(t, "glow", items["Light"].OnEquip)
		assert.Equal(t, entity.PassiveNone, items["Light"].Passive)
	})

	t.Run("shipped petals file", func(t *testing.T) {
		items := LoadItems(loadTestGameConfig(t).Items)

		for _, name := range []string{"Rose", "Light", "Stinger", "Pollen", "Missile"} {
			_, ok := items.Lookup(name)
			assert.True(t, ok, name)
		}
	})
}

func TestLoadPlayerStats(t *testing.T) {
	stats := LoadPlayerStats(&config.PlayerConfig{Speed: 6})

	def := entity.DefaultPlayerStats()
	assert.Equal(t, 6.0, stats.Speed)
	assert.Equal(t, def.Radius, stats.Radius)
	assert.Equal(t, def.PetalCount, stats.PetalCount)
}

func TestLoadArena(t *testing.T) {
	arena := LoadArena(&config.DisplayConfig{ScreenWidth: 800, ScreenHeight: 600})

	assert.Equal(t, entity.Arena{Width: 800, Height: 600}, arena)
}
