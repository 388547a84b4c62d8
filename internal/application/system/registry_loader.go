package system

import (
	"strings"
	"time"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

// LoadItems converts an ItemsConfig into an item registry.
// A nil config yields the built-in item table.
func LoadItems(cfg *config.ItemsConfig) entity.ItemRegistry {
	if cfg == nil || len(cfg.Items) == 0 {
		return entity.DefaultItems()
	}

	items := make(entity.ItemRegistry, len(cfg.Items))
	for _, ic := range cfg.Items {
		if ic.Name == "" {
			continue
		}
		var passive entity.PassiveKind
		switch strings.ToLower(ic.Passive) {
		case "heal":
			passive = entity.PassiveHeal
		case "aura":
			passive = entity.PassiveAura
		default:
			passive = entity.PassiveNone
		}

		items[ic.Name] = entity.ItemDef{
			Name:            ic.Name,
			Heal:            ic.Heal,
			Damage:          ic.Damage,
			Cooldown:        ms(ic.CooldownMs),
			UseTime:         ms(ic.UseTimeMs),
			Mass:            ic.Mass,
			OnAttack:        ic.OnAttack,
			Passive:         passive,
			PassiveAmount:   ic.PassiveAmount,
			PassiveInterval: ms(ic.PassiveIntervalMs),
			PassiveRange:    ic.PassiveRange,
			OnEquip:         ic.OnEquip,
			OnUnequip:       ic.OnUnequip,
			Description:     ic.Description,
		}
	}
	return items
}

// LoadArena sizes the arena from the display config
func LoadArena(cfg *config.DisplayConfig) entity.Arena {
	return entity.Arena{
		Width:  float64(cfg.ScreenWidth),
		Height: float64(cfg.ScreenHeight),
	}
}

// LoadPlayerStats converts a PlayerConfig, filling unset fields from the defaults
func LoadPlayerStats(cfg *config.PlayerConfig) entity.PlayerStats {
	def := entity.DefaultPlayerStats()
	stats := entity.PlayerStats{
		Radius:                orDefault(cfg.Radius, def.Radius),
		Speed:                 orDefault(cfg.Speed, def.Speed),
		MaxHealth:             orDefault(cfg.MaxHealth, def.MaxHealth),
		Mass:                  orDefault(cfg.Mass, def.Mass),
		PetalCount:            cfg.PetalCount,
		PetalDistance:         orDefault(cfg.PetalDistance, def.PetalDistance),
		PetalDistanceExpanded: orDefault(cfg.PetalDistanceExpanded, def.PetalDistanceExpanded),
	}
	if stats.PetalCount <= 0 {
		stats.PetalCount = def.PetalCount
	}
	return stats
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
