package entity

import (
	"math"
	"time"
)

// Projectile represents a straight-flying shot
type Projectile struct {
	X, Y   float64
	DX, DY float64 // Per-frame displacement
	Radius float64
	Damage float64
	Type   string
	Mass   float64 // Zero means the channel default applies
}

// NewProjectileToward creates a projectile at (x, y) heading at angle with the given speed
func NewProjectileToward(x, y, angle, speed, radius, damage float64, projType string) *Projectile {
	return &Projectile{
		X:      x,
		Y:      y,
		DX:     math.Cos(angle) * speed,
		DY:     math.Sin(angle) * speed,
		Radius: radius,
		Damage: damage,
		Type:   projType,
	}
}

// Update advances the projectile by one frame
func (p *Projectile) Update() {
	p.X += p.DX
	p.Y += p.DY
}

// MassOr returns the projectile mass, or def when unset
func (p *Projectile) MassOr(def float64) float64 {
	if p.Mass > 0 {
		return p.Mass
	}
	return def
}

// Center implements Circle
func (p *Projectile) Center() (float64, float64) { return p.X, p.Y }

// CircleRadius implements Circle
func (p *Projectile) CircleRadius() float64 { return p.Radius }

// Drop is a collectible item on the ground
type Drop struct {
	X, Y   float64
	Radius float64
	Type   string
	Rarity string
	Stack  int
}

// Center implements Circle
func (d *Drop) Center() (float64, float64) { return d.X, d.Y }

// CircleRadius implements Circle
func (d *Drop) CircleRadius() float64 { return d.Radius }

// Petal orbits the player and represents one loadout slot
type Petal struct {
	Angle       float64
	Radius      float64
	SlotIndex   int
	ExpandUntil time.Duration
	ExpandExtra float64
}

// Position returns the petal center around (cx, cy) at orbit distance dist
func (p *Petal) Position(cx, cy, dist float64) (float64, float64) {
	return cx + math.Cos(p.Angle)*dist, cy + math.Sin(p.Angle)*dist
}

// Extra returns the temporary orbit extension active at now
func (p *Petal) Extra(now time.Duration) float64 {
	if now < p.ExpandUntil {
		return p.ExpandExtra
	}
	return 0
}
