package entity

import "time"

// PlayerStats configures a new player
type PlayerStats struct {
	Radius                float64
	Speed                 float64
	MaxHealth             float64
	Mass                  float64
	PetalCount            int
	PetalDistance         float64
	PetalDistanceExpanded float64
}

// DefaultPlayerStats returns the stock player configuration
func DefaultPlayerStats() PlayerStats {
	return PlayerStats{
		Radius:                15,
		Speed:                 4,
		MaxHealth:             100,
		Mass:                  10,
		PetalCount:            SlotCount,
		PetalDistance:         30,
		PetalDistanceExpanded: 80,
	}
}

// Player represents the player-controlled flower
type Player struct {
	X, Y   float64
	VX, VY float64

	Radius    float64
	Speed     float64
	Health    float64
	MaxHealth float64
	Mass      float64

	PetalCount            int
	PetalDistance         float64
	PetalDistanceDefault  float64
	PetalDistanceExpanded float64

	Equipped  [SlotCount]*Item
	Swap      [SlotCount]*Item
	Inventory []Item
	// NextUse is the round-robin pointer for active item use
	NextUse int

	Cooldowns     Cooldowns[string]
	LastHit       Stamp
	HitFlashUntil time.Duration
	Godmode       bool

	// Kills counts defeated mobs by name
	Kills map[string]int
}

// NewPlayer creates a new player at the given position
func NewPlayer(x, y float64, stats PlayerStats) *Player {
	return &Player{
		X:                     x,
		Y:                     y,
		Radius:                stats.Radius,
		Speed:                 stats.Speed,
		Health:                stats.MaxHealth,
		MaxHealth:             stats.MaxHealth,
		Mass:                  stats.Mass,
		PetalCount:            stats.PetalCount,
		PetalDistance:         stats.PetalDistance,
		PetalDistanceDefault:  stats.PetalDistance,
		PetalDistanceExpanded: stats.PetalDistanceExpanded,
		Cooldowns:             make(Cooldowns[string]),
		Kills:                 make(map[string]int),
	}
}

// Center implements Circle
func (p *Player) Center() (float64, float64) { return p.X, p.Y }

// CircleRadius implements Circle
func (p *Player) CircleRadius() float64 { return p.Radius }

// TakeDamage applies damage unless godmode is on.
// Returns true if the player died from this hit.
func (p *Player) TakeDamage(damage float64) bool {
	if p.Godmode || damage <= 0 {
		return false
	}
	wasAlive := p.Health > 0
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
	return wasAlive && p.Health <= 0
}

// Heal restores health up to the maximum
func (p *Player) Heal(amount float64) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// IsAlive returns true if the player has health left
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// Respawn restores the player at the given position.
// The loadout and kill tally carry over.
func (p *Player) Respawn(x, y float64) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Health = p.MaxHealth
	p.PetalDistance = p.PetalDistanceDefault
	p.LastHit.Reset()
	p.HitFlashUntil = 0
	p.Cooldowns = make(Cooldowns[string])
}
