package entity

import (
	"strings"
	"time"
)

// PetalHitKey identifies a petal hitting a mob or one of its segments
type PetalHitKey struct {
	Petal   int
	Segment EntityID
}

// BurrowState tracks damage taken by a brood-spawning mob
type BurrowState struct {
	LastHealth float64
	Accum      float64
	Ticks      int
}

// Mob represents a hostile entity
type Mob struct {
	ID     EntityID
	X, Y   float64
	VX, VY float64

	Type        string
	Name        string
	SpriteKey   string
	RarityIndex int
	RarityName  string

	Radius    float64
	Speed     float64
	Health    float64
	MaxHealth float64
	Mass      float64
	Damage    float64
	Drops     []string
	// TemplateDrops is set when Drops come from a config template
	TemplateDrops bool

	Stationary bool
	Aggressive bool

	// Facing is the displayed angle in radians
	Facing           float64
	HitFlashUntil    time.Duration
	TurnUntil        time.Duration
	HeadPromoteUntil time.Duration

	PetalHits Cooldowns[PetalHitKey]
	Behavior  Behavior

	// Segments is non-empty only for chain mobs; index 0 is the head
	Segments []*Segment
	Burrow   *BurrowState

	// Projectiles fired by this mob
	Projectiles []*Projectile
}

// NewMob creates a mob with full health
func NewMob(id EntityID, x, y float64, mobType string) *Mob {
	return &Mob{
		ID:        id,
		X:         x,
		Y:         y,
		Type:      mobType,
		Name:      mobType,
		PetalHits: make(Cooldowns[PetalHitKey]),
		Behavior:  &ChaseBehavior{SpeedFactor: 1},
	}
}

// Center implements Circle
func (m *Mob) Center() (float64, float64) { return m.X, m.Y }

// CircleRadius implements Circle
func (m *Mob) CircleRadius() float64 { return m.Radius }

// Is reports whether the mob type or name contains tag, case-insensitively
func (m *Mob) Is(tag string) bool {
	tag = strings.ToLower(tag)
	return strings.Contains(strings.ToLower(m.Type), tag) || strings.Contains(strings.ToLower(m.Name), tag)
}

// IsChain reports whether the mob is segmented
func (m *Mob) IsChain() bool {
	_, ok := m.Behavior.(*ChainBehavior)
	return ok
}

// IsDead reports whether the mob should be removed
func (m *Mob) IsDead() bool {
	if m.IsChain() {
		return len(m.Segments) == 0
	}
	return m.Health <= 0
}

// TakeDamage applies damage and flashes the mob
func (m *Mob) TakeDamage(damage float64, now, flash time.Duration) {
	m.Health -= damage
	m.HitFlashUntil = now + flash
}

// Head returns the lead segment, or nil
func (m *Mob) Head() *Segment {
	if len(m.Segments) == 0 {
		return nil
	}
	return m.Segments[0]
}

// SyncHead copies the head position onto the mob
func (m *Mob) SyncHead() {
	if h := m.Head(); h != nil {
		m.X, m.Y = h.X, h.Y
	}
}

// RemoveSegment removes the segment at index. Removing the head promotes the
// next segment, marks the promotion window, and nudges the new head forward.
func (m *Mob) RemoveSegment(index int, now, promoteFor time.Duration, nudge float64) {
	if index < 0 || index >= len(m.Segments) {
		return
	}
	m.Segments = append(m.Segments[:index], m.Segments[index+1:]...)
	if index == 0 && len(m.Segments) > 0 {
		m.HeadPromoteUntil = now + promoteFor
		m.Segments[0].ImpulseX += nudge
	}
	m.SyncHead()
}

// NearestSegment returns the index of the segment closest to (x, y), or -1
func (m *Mob) NearestSegment(x, y float64) int {
	best := -1
	bestDist := 0.0
	for i, s := range m.Segments {
		d := Distance(x, y, s.X, s.Y)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Segment is one link of a chain mob
type Segment struct {
	ID     EntityID
	X, Y   float64
	VX, VY float64
	Radius float64
	HP     float64
	MaxHP  float64

	// Pending positional impulse, consumed on the next movement step
	ImpulseX, ImpulseY float64
}

// Center implements Circle
func (s *Segment) Center() (float64, float64) { return s.X, s.Y }

// CircleRadius implements Circle
func (s *Segment) CircleRadius() float64 { return s.Radius }

// TakeImpulse consumes the pending impulse
func (s *Segment) TakeImpulse() (float64, float64) {
	x, y := s.ImpulseX, s.ImpulseY
	s.ImpulseX, s.ImpulseY = 0, 0
	return x, y
}
