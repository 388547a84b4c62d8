package config

// MobsConfig is the root config for mobs.yaml
type MobsConfig struct {
	Rarities   []RarityTier      `yaml:"rarities"`
	SpawnBands []SpawnBandConfig `yaml:"spawnBands"`
	Mobs       []MobTemplate     `yaml:"mobs"`
	Brood      BroodConfig       `yaml:"brood"`
}

// RarityTier overrides the name and stat multiplier of one ladder position
type RarityTier struct {
	Name       string  `yaml:"name"`
	Multiplier float64 `yaml:"multiplier"`
}

// SpawnBandConfig holds rarity weights for waves up to MaxWave (0 = unbounded)
type SpawnBandConfig struct {
	MaxWave int       `yaml:"maxWave"`
	Weights []float64 `yaml:"weights"`
}

// MobTemplate describes a spawnable mob kind
type MobTemplate struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Sprite     string   `yaml:"sprite"`
	BaseHP     float64  `yaml:"baseHP"`
	BaseDamage float64  `yaml:"baseDamage"`
	BaseSize   float64  `yaml:"baseSize"`
	BaseSpeed  float64  `yaml:"baseSpeed"`
	BaseRarity int      `yaml:"baseRarity"`
	Drops      []string `yaml:"drops"`

	Stationary    bool    `yaml:"stationary"`
	Patrol        *bool   `yaml:"patrol"`
	PatrolRange   float64 `yaml:"patrolRange"`
	Segments      int     `yaml:"segments"`
	ShootCooldown *int    `yaml:"shootCooldown"`
}

// BroodConfig lists the mobs an ant burrow releases
type BroodConfig struct {
	Ant    BroodMob `yaml:"ant"`
	Worker BroodMob `yaml:"worker"`
	Baby   BroodMob `yaml:"baby"`
	Queen  BroodMob `yaml:"queen"`
	// Threshold is the fraction of max health that triggers one wave of brood
	Threshold float64 `yaml:"threshold"`
}

// BroodMob is a fixed-stat mob released by a burrow
type BroodMob struct {
	Name        string  `yaml:"name"`
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`
	HP          float64 `yaml:"hp"`
	Mass        float64 `yaml:"mass"`
	RarityIndex int     `yaml:"rarityIndex"`
	Patrol      bool    `yaml:"patrol"`
}

// DefaultBrood returns the built-in burrow brood
func DefaultBrood() BroodConfig {
	return BroodConfig{
		Ant:       BroodMob{Name: "Ant", Radius: 10, Speed: 1.2, HP: 30, Mass: 10, Patrol: true},
		Worker:    BroodMob{Name: "Worker Ant", Radius: 12, Speed: 1.1, HP: 40, Mass: 12},
		Baby:      BroodMob{Name: "Baby Ant", Radius: 8, Speed: 0.6, HP: 18, Mass: 6},
		Queen:     BroodMob{Name: "Queen Ant", Radius: 22, Speed: 1, HP: 240, Mass: 24, RarityIndex: 2},
		Threshold: 0.15,
	}
}

// DefaultMobs returns an empty template set so spawns use the fallback archetypes
func DefaultMobs() *MobsConfig {
	return &MobsConfig{Brood: DefaultBrood()}
}

// ItemsConfig is the root config for petals.json
type ItemsConfig struct {
	Items []ItemConfig `json:"items"`
}

// ItemConfig describes one item type
type ItemConfig struct {
	Name              string  `json:"name"`
	Heal              float64 `json:"heal"`
	Damage            float64 `json:"damage"`
	CooldownMs        int     `json:"cooldownMs"`
	UseTimeMs         int     `json:"useTimeMs"`
	Mass              float64 `json:"mass"`
	OnAttack          bool    `json:"onAttack"`
	Passive           string  `json:"passive"`
	PassiveAmount     float64 `json:"passiveAmount"`
	PassiveIntervalMs int     `json:"passiveIntervalMs"`
	PassiveRange      float64 `json:"passiveRange"`
	OnEquip           string  `json:"onEquip"`
	OnUnequip         string  `json:"onUnequip"`
	Description       string  `json:"description"`
}
