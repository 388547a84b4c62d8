package config

import (
	"maps"
	"slices"
	"time"
)

// TuningConfig is the root config for tuning.json
type TuningConfig struct {
	Display DisplayConfig `json:"display"`
	Player  PlayerConfig  `json:"player"`
	Combat  CombatConfig  `json:"combat"`
	Spawn   SpawnConfig   `json:"spawn"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

type PlayerConfig struct {
	Radius                float64 `json:"radius"`
	Speed                 float64 `json:"speed"`
	MaxHealth             float64 `json:"maxHealth"`
	Mass                  float64 `json:"mass"`
	PetalCount            int     `json:"petalCount"`
	PetalRadius           float64 `json:"petalRadius"`
	PetalSpin             float64 `json:"petalSpin"`
	PetalDistance         float64 `json:"petalDistance"`
	PetalDistanceExpanded float64 `json:"petalDistanceExpanded"`
	// PetalLerp is the per-frame approach rate back to the default distance
	PetalLerp float64 `json:"petalLerp"`
}

type CombatConfig struct {
	PetalHitCooldownMs   int                `json:"petalHitCooldownMs"`
	PlayerIframeMs       int                `json:"playerIframeMs"`
	HitFlashMs           int                `json:"hitFlashMs"`
	PetalDamage          float64            `json:"petalDamage"`
	ContactDamage        map[string]float64 `json:"contactDamage"`
	DefaultContactDamage float64            `json:"defaultContactDamage"`
	ProjectileSpeed      float64            `json:"projectileSpeed"`
	ProjectileRadius     float64            `json:"projectileRadius"`
	ExpandMs             int                `json:"expandMs"`
	ExpandExtra          float64            `json:"expandExtra"`
	OffscreenMargin      float64            `json:"offscreenMargin"`
	DropRadius           float64            `json:"dropRadius"`
	DefaultAttackMs      int                `json:"defaultAttackMs"`
	DefaultUseMs         int                `json:"defaultUseMs"`
}

type SpawnConfig struct {
	MinBatch          int     `json:"minBatch"`
	BaseBatch         int     `json:"baseBatch"`
	BatchPerWave      float64 `json:"batchPerWave"`
	MaxSpacingMs      int     `json:"maxSpacingMs"`
	MinSpacingMs      int     `json:"minSpacingMs"`
	SpacingPerWaveMs  int     `json:"spacingPerWaveMs"`
	MaxSpacingCutMs   int     `json:"maxSpacingCutMs"`
	HPGrowthPerWave   float64 `json:"hpGrowthPerWave"`
	FallbackShootRate int     `json:"fallbackShootRate"`
}

// DefaultTuning returns the built-in tuning values
func DefaultTuning() *TuningConfig {
	return &TuningConfig{
		Display: DisplayConfig{ScreenWidth: 960, ScreenHeight: 640, Scale: 1, Framerate: 60},
		Player: PlayerConfig{
			Radius: 15, Speed: 4, MaxHealth: 100, Mass: 10,
			PetalCount: 10, PetalRadius: 6, PetalSpin: 0.05,
			PetalDistance: 30, PetalDistanceExpanded: 80, PetalLerp: 0.6,
		},
		Combat: CombatConfig{
			PetalHitCooldownMs:   350,
			PlayerIframeMs:       500,
			HitFlashMs:           120,
			PetalDamage:          0.5,
			ContactDamage:        map[string]float64{"bee": 1},
			DefaultContactDamage: 0.5,
			ProjectileSpeed:      6,
			ProjectileRadius:     6,
			ExpandMs:             220,
			ExpandExtra:          48,
			OffscreenMargin:      50,
			DropRadius:           18,
			DefaultAttackMs:      800,
			DefaultUseMs:         900,
		},
		Spawn: SpawnConfig{
			MinBatch: 6, BaseBatch: 8, BatchPerWave: 1.6,
			MaxSpacingMs: 600, MinSpacingMs: 120, SpacingPerWaveMs: 10, MaxSpacingCutMs: 400,
			HPGrowthPerWave:   0.03,
			FallbackShootRate: 120,
		},
	}
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// PetalHitCooldown returns the per petal-target hit cooldown
func (c CombatConfig) PetalHitCooldown() time.Duration { return ms(c.PetalHitCooldownMs) }

// PlayerIframes returns the melee invulnerability window
func (c CombatConfig) PlayerIframes() time.Duration { return ms(c.PlayerIframeMs) }

// HitFlash returns how long a damaged entity flashes
func (c CombatConfig) HitFlash() time.Duration { return ms(c.HitFlashMs) }

// Expand returns how long a firing petal stays extended
func (c CombatConfig) Expand() time.Duration { return ms(c.ExpandMs) }

// DefaultAttack returns the attack cooldown for items without one
func (c CombatConfig) DefaultAttack() time.Duration { return ms(c.DefaultAttackMs) }

// DefaultUse returns the active-use cooldown for items without one
func (c CombatConfig) DefaultUse() time.Duration { return ms(c.DefaultUseMs) }

// ContactDamageFor returns melee damage for a mob type tag
func (c CombatConfig) ContactDamageFor(matches func(tag string) bool) float64 {
	for _, tag := range slices.Sorted(maps.Keys(c.ContactDamage)) {
		if matches(tag) {
			return c.ContactDamage[tag]
		}
	}
	return c.DefaultContactDamage
}

// BatchSize returns the number of mobs spawned for a wave
func (c SpawnConfig) BatchSize(wave int) int {
	n := c.BaseBatch + int(float64(wave)*c.BatchPerWave)
	if n < c.MinBatch {
		return c.MinBatch
	}
	return n
}

// Spacing returns the delay between spawns for a wave
func (c SpawnConfig) Spacing(wave int) time.Duration {
	cut := wave * c.SpacingPerWaveMs
	if cut > c.MaxSpacingCutMs {
		cut = c.MaxSpacingCutMs
	}
	v := c.MaxSpacingMs - cut
	if v < c.MinSpacingMs {
		v = c.MinSpacingMs
	}
	return ms(v)
}
