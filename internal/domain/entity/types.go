package entity

import (
	"math"
	"time"
)

// EntityID is a unique identifier for an entity
type EntityID uint32

// Arena represents the rectangular play field
type Arena struct {
	Width  float64
	Height float64
}

// Clamp keeps the point inside the arena, inset by margin on every side
func (a Arena) Clamp(x, y, margin float64) (float64, float64) {
	return clamp(x, margin, a.Width-margin), clamp(y, margin, a.Height-margin)
}

// Contains reports whether the point lies inside the arena grown by margin
func (a Arena) Contains(x, y, margin float64) bool {
	return x >= -margin && x <= a.Width+margin && y >= -margin && y <= a.Height+margin
}

// CenterX returns the horizontal center of the arena
func (a Arena) CenterX() float64 { return a.Width / 2 }

// CenterY returns the vertical center of the arena
func (a Arena) CenterY() float64 { return a.Height / 2 }

// Stamp is an optional point on the simulation clock.
// The zero Stamp has never been set.
type Stamp struct {
	at  time.Duration
	set bool
}

// Mark records now
func (s *Stamp) Mark(now time.Duration) {
	s.at = now
	s.set = true
}

// Reset clears the stamp
func (s *Stamp) Reset() {
	*s = Stamp{}
}

// Elapsed reports whether strictly more than d has passed since the stamp.
// An unset stamp has always elapsed.
func (s Stamp) Elapsed(now, d time.Duration) bool {
	return !s.set || now-s.at > d
}

// Cooldowns records the last firing time of keyed actions on the simulation clock
type Cooldowns[K comparable] map[K]time.Duration

// Ready reports whether at least cooldown has passed since key last fired
func (c Cooldowns[K]) Ready(key K, now, cooldown time.Duration) bool {
	last, ok := c[key]
	return !ok || now-last >= cooldown
}

// ReadyStrict reports whether strictly more than cooldown has passed since key last fired
func (c Cooldowns[K]) ReadyStrict(key K, now, cooldown time.Duration) bool {
	last, ok := c[key]
	return !ok || now-last > cooldown
}

// Mark records that key fired at now
func (c Cooldowns[K]) Mark(key K, now time.Duration) {
	c[key] = now
}

// Distance returns the euclidean distance between two points
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Circle is anything with a position and a radius
type Circle interface {
	Center() (x, y float64)
	CircleRadius() float64
}

// Overlaps reports whether two circles strictly overlap
func Overlaps(a, b Circle) bool {
	ax, ay := a.Center()
	bx, by := b.Center()
	return Distance(ax, ay, bx, by) < a.CircleRadius()+b.CircleRadius()
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
