package system

import (
	"math"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

const (
	// positional correction applied per contact, as a share of the overlap
	separationShare = 0.6
	// mob-to-mob impulse per unit of overlap, with a floor
	mobImpulseScale = 0.8
	mobImpulseMin   = 0.6
	// velocity kick applied to the player and mobs on player contact
	contactKick = 1.6
	// generic velocity damping for mobs and the player
	driftDamping = 0.86
	driftEpsilon = 0.01
)

// PhysicsSystem resolves circle overlaps with mass-weighted impulses
type PhysicsSystem struct{}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

// ResolveMobs separates every overlapping pair of non-chain mobs
func (s *PhysicsSystem) ResolveMobs(mobs []*entity.Mob) {
	for i := 0; i < len(mobs); i++ {
		a := mobs[i]
		if a.IsChain() {
			continue
		}
		for j := i + 1; j < len(mobs); j++ {
			b := mobs[j]
			if b.IsChain() {
				continue
			}
			s.resolveMobPair(a, b)
		}
	}
}

func (s *PhysicsSystem) resolveMobPair(a, b *entity.Mob) {
	nx, ny, overlap, ok := contact(a.X, a.Y, a.Radius, b.X, b.Y, b.Radius)
	if !ok {
		return
	}

	am, bm := massOf(a.Mass), massOf(b.Mass)
	total := am + bm

	aMove := overlap * (bm / total) * separationShare
	bMove := overlap * (am / total) * separationShare
	a.X -= nx * aMove
	a.Y -= ny * aMove
	b.X += nx * bMove
	b.Y += ny * bMove

	impulse := math.Max(mobImpulseMin, overlap*mobImpulseScale)
	a.VX -= nx * impulse * (bm / total)
	a.VY -= ny * impulse * (bm / total)
	b.VX += nx * impulse * (am / total)
	b.VY += ny * impulse * (am / total)
}

// ResolvePlayerMob pushes the player and mob apart.
// Chain mobs are resolved against their nearest segment.
// Returns true when the two touch.
func (s *PhysicsSystem) ResolvePlayerMob(p *entity.Player, m *entity.Mob) bool {
	if m.IsChain() {
		i := m.NearestSegment(p.X, p.Y)
		if i < 0 {
			return false
		}
		seg := m.Segments[i]
		segMass := math.Max(1, m.Mass/math.Max(1, float64(len(m.Segments))))
		return s.resolvePlayerSegment(p, seg, segMass)
	}

	d := entity.Distance(p.X, p.Y, m.X, m.Y)
	if d >= p.Radius+m.Radius {
		return false
	}
	// n points from the mob to the player
	nx, ny, overlap, ok := contact(m.X, m.Y, m.Radius, p.X, p.Y, p.Radius)
	if !ok {
		return true
	}

	pm, mm := massOf(p.Mass), massOf(m.Mass)
	total := pm + mm
	push := overlap * separationShare

	p.X += nx * push * (mm / total)
	p.Y += ny * push * (mm / total)
	m.X -= nx * push * (pm / total)
	m.Y -= ny * push * (pm / total)

	p.VX += nx * (mm / total) * contactKick
	p.VY += ny * (mm / total) * contactKick
	m.VX -= nx * (pm / total) * contactKick
	m.VY -= ny * (pm / total) * contactKick
	return true
}

func (s *PhysicsSystem) resolvePlayerSegment(p *entity.Player, seg *entity.Segment, segMass float64) bool {
	d := entity.Distance(p.X, p.Y, seg.X, seg.Y)
	if d >= p.Radius+seg.Radius {
		return false
	}
	nx, ny, overlap, ok := contact(seg.X, seg.Y, seg.Radius, p.X, p.Y, p.Radius)
	if !ok {
		return true
	}

	pm := massOf(p.Mass)
	total := pm + segMass
	push := overlap * separationShare

	p.X += nx * push * (segMass / total)
	p.Y += ny * push * (segMass / total)
	seg.X -= nx * push * (pm / total)
	seg.Y -= ny * push * (pm / total)

	p.VX += nx * (segMass / total) * contactKick
	p.VY += ny * (segMass / total) * contactKick
	seg.ImpulseX -= nx * (pm / total) * contactKick
	seg.ImpulseY -= ny * (pm / total) * contactKick
	return true
}

// Knockback pushes a body away from the point (fromX, fromY)
func Knockback(x, y, fromX, fromY float64, vx, vy *float64, scale float64) {
	d := math.Max(0.0001, entity.Distance(fromX, fromY, x, y))
	*vx += (x - fromX) / d * scale
	*vy += (y - fromY) / d * scale
}

// drift applies velocity to position, then damps it
func drift(x, y, vx, vy *float64) {
	*x += *vx
	*y += *vy
	*vx *= driftDamping
	*vy *= driftDamping
	if math.Abs(*vx) < driftEpsilon {
		*vx = 0
	}
	if math.Abs(*vy) < driftEpsilon {
		*vy = 0
	}
}

// contact returns the unit normal from a to b and the overlap depth.
// ok is false unless the circles overlap at a non-zero distance.
func contact(ax, ay, ar, bx, by, br float64) (nx, ny, overlap float64, ok bool) {
	dx, dy := bx-ax, by-ay
	dist := math.Hypot(dx, dy)
	if dist <= 0 || dist >= ar+br {
		return 0, 0, 0, false
	}
	return dx / dist, dy / dist, ar + br - dist, true
}

func massOf(m float64) float64 {
	if m <= 0 {
		return 1
	}
	return m
}
