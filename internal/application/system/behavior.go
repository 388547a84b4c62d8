package system

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/younwookim/petalarena/internal/domain/entity"
)

const (
	chainAccel       = 0.3
	chainDamping     = 0.85
	chainPull        = 0.8
	rangedFar        = 200
	rangedNear       = 150
	rangedTurn       = 160 * time.Millisecond
	mobMissileSpeed  = 4
	mobMissileRadius = 5
	mobMissileDamage = 5
	wanderBias       = 1.2
	wanderMinTurn    = 800 * time.Millisecond
	wanderTurnSpread = 1200
	wanderStepScale  = 0.25
	wanderMargin     = 8
	lungeRange       = 260
	lungeImpulse     = 6
	lungeCarry       = 0.9
	chargeRange      = 220
	chargeImpulse    = 10
	chargeCarry      = 0.85
	chargeSpeed      = 1.4
	chargeReset      = 220
	patrolMargin     = 8
	turnRate         = 0.05
	turnRateShooting = 0.14
)

// BehaviorSystem moves mobs according to their behavior variant
type BehaviorSystem struct {
	rng     *rand.Rand
	physics *PhysicsSystem

	// OnFault is called when a single mob's update panics; the frame continues
	OnFault func(m *entity.Mob, err any)
}

// NewBehaviorSystem creates a new behavior system
func NewBehaviorSystem(rng *rand.Rand, physics *PhysicsSystem) *BehaviorSystem {
	return &BehaviorSystem{rng: rng, physics: physics}
}

// Update moves every mob and its projectiles, then resolves mob overlaps
func (s *BehaviorSystem) Update(w *World) {
	for _, m := range w.Mobs {
		s.guard(m, func() { s.updateMob(w, m) })
	}
	s.physics.ResolveMobs(w.Mobs)
}

func (s *BehaviorSystem) guard(m *entity.Mob, fn func()) {
	defer func() {
		if r := recover(); r != nil && s.OnFault != nil {
			s.OnFault(m, r)
		}
	}()
	fn()
}

func (s *BehaviorSystem) updateMob(w *World, m *entity.Mob) {
	for _, p := range m.Projectiles {
		p.Update()
	}

	switch b := m.Behavior.(type) {
	case *entity.StationaryBehavior:
		return
	case *entity.ChainBehavior:
		s.updateChain(w, m)
		return
	case *entity.PatrolBehavior:
		s.updatePatrol(w, m, b)
	case *entity.RangedBehavior:
		s.updateRanged(w, m, b)
	case *entity.WanderBehavior:
		s.updateWander(w, m, b)
	case *entity.LungeBehavior:
		s.updateLunge(w, m, b)
	case *entity.ChargeBehavior:
		s.updateCharge(w, m, b)
	case *entity.ChaseBehavior:
		s.chase(w, m, b.SpeedFactor)
	default:
		s.chase(w, m, 1)
	}

	drift(&m.X, &m.Y, &m.VX, &m.VY)
	s.updateFacing(w, m)
}

// toPlayer returns the unit direction and distance from the mob to the player
func toPlayer(w *World, x, y float64) (nx, ny, dist float64) {
	dx, dy := w.Player.X-x, w.Player.Y-y
	dist = math.Hypot(dx, dy)
	if dist == 0 {
		return 0, 0, 0
	}
	return dx / dist, dy / dist, dist
}

func (s *BehaviorSystem) chase(w *World, m *entity.Mob, factor float64) {
	nx, ny, _ := toPlayer(w, m.X, m.Y)
	m.X += nx * m.Speed * factor
	m.Y += ny * m.Speed * factor
}

func (s *BehaviorSystem) updatePatrol(w *World, m *entity.Mob, b *entity.PatrolBehavior) {
	wobble := math.Sin(float64(w.Now.Milliseconds())/300+b.Phase) * 0.12
	m.X += b.Dir * m.Speed * (1 + wobble)
	if m.X < b.Center-b.Range || m.X > b.Center+b.Range || m.X < patrolMargin || m.X > w.Arena.Width-patrolMargin {
		b.Dir = -b.Dir
	}
}

func (s *BehaviorSystem) updateChain(w *World, m *entity.Mob) {
	if len(m.Segments) == 0 {
		return
	}

	head := m.Segments[0]
	nx, ny, _ := toPlayer(w, head.X, head.Y)
	head.VX += nx * m.Speed * chainAccel
	head.VY += ny * m.Speed * chainAccel
	ix, iy := head.TakeImpulse()
	head.VX += ix
	head.VY += iy
	head.X += head.VX
	head.Y += head.VY
	head.VX *= chainDamping
	head.VY *= chainDamping

	for i := 1; i < len(m.Segments); i++ {
		prev, cur := m.Segments[i-1], m.Segments[i]
		want := prev.Radius + cur.Radius + 1
		dx, dy := prev.X-cur.X, prev.Y-cur.Y
		d := math.Max(0.0001, math.Hypot(dx, dy))
		pull := math.Max(0, d-want) * chainPull
		cur.X += dx / d * pull
		cur.Y += dy / d * pull
		ix, iy := cur.TakeImpulse()
		cur.X += ix
		cur.Y += iy
	}

	for _, seg := range m.Segments {
		seg.X, seg.Y = w.Arena.Clamp(seg.X, seg.Y, 0)
	}
	m.SyncHead()
}

func (s *BehaviorSystem) updateRanged(w *World, m *entity.Mob, b *entity.RangedBehavior) {
	nx, ny, dist := toPlayer(w, m.X, m.Y)
	if dist > rangedFar {
		m.X += nx * m.Speed
		m.Y += ny * m.Speed
	} else if dist < rangedNear {
		m.X -= nx * m.Speed
		m.Y -= ny * m.Speed
	}

	b.Cooldown--
	if b.Cooldown > 0 {
		return
	}
	m.TurnUntil = w.Now + rangedTurn
	angle := math.Atan2(w.Player.Y-m.Y, w.Player.X-m.X)
	m.Projectiles = append(m.Projectiles,
		entity.NewProjectileToward(m.X, m.Y, angle, mobMissileSpeed, mobMissileRadius, mobMissileDamage, "Missile"))
	b.Cooldown = b.Reset
}

func (s *BehaviorSystem) updateWander(w *World, m *entity.Mob, b *entity.WanderBehavior) {
	if m.Aggressive {
		s.chase(w, m, 1)
		return
	}
	if w.Now > b.NextTurn {
		b.Dir += (s.rng.Float64() - 0.5) * wanderBias
		b.NextTurn = w.Now + wanderMinTurn + time.Duration(s.rng.Float64()*wanderTurnSpread)*time.Millisecond
	}
	step := math.Max(0.2, m.Speed*wanderStepScale)
	m.X += math.Cos(b.Dir) * step
	m.Y += math.Sin(b.Dir) * step
	m.X, m.Y = w.Arena.Clamp(m.X, m.Y, wanderMargin)
}

func (s *BehaviorSystem) updateLunge(w *World, m *entity.Mob, b *entity.LungeBehavior) {
	nx, ny, dist := toPlayer(w, m.X, m.Y)
	b.Cooldown--
	if b.Cooldown <= 0 && dist < lungeRange {
		m.VX += nx * lungeImpulse
		m.VY += ny * lungeImpulse
		b.Cooldown = 160 + s.rng.Intn(120)
	}
	m.X += m.VX * lungeCarry
	m.Y += m.VY * lungeCarry
}

func (s *BehaviorSystem) updateCharge(w *World, m *entity.Mob, b *entity.ChargeBehavior) {
	nx, ny, dist := toPlayer(w, m.X, m.Y)
	b.Cooldown--
	if b.Cooldown <= 0 && dist < chargeRange {
		m.VX += nx * chargeImpulse
		m.VY += ny * chargeImpulse
		b.Cooldown = chargeReset
	}
	m.X += nx * m.Speed * chargeSpeed
	m.Y += ny * m.Speed * chargeSpeed
	m.X += m.VX * chargeCarry
	m.Y += m.VY * chargeCarry
}

// updateFacing turns the display angle toward the desired heading at a capped rate
func (s *BehaviorSystem) updateFacing(w *World, m *entity.Mob) {
	toward := math.Atan2(w.Player.Y-m.Y, w.Player.X-m.X)
	turning := m.TurnUntil > w.Now

	if wb, ok := m.Behavior.(*entity.WanderBehavior); ok && isCritter(m) {
		if !m.Aggressive {
			m.Facing = wb.Dir
			return
		}
		m.Facing = turnToward(m.Facing, toward, turnRate)
		return
	}

	desired := toward + math.Pi
	rate := turnRate
	if turning {
		desired = toward
		rate = turnRateShooting
	}
	m.Facing = turnToward(m.Facing, desired, rate)
}

func isCritter(m *entity.Mob) bool {
	t := strings.ToLower(m.Type)
	return strings.Contains(t, "bee") || strings.Contains(t, "ladybug")
}

// turnToward rotates current toward target by at most maxStep radians
func turnToward(current, target, maxStep float64) float64 {
	diff := math.Remainder(target-current, 2*math.Pi)
	if diff > maxStep {
		diff = maxStep
	} else if diff < -maxStep {
		diff = -maxStep
	}
	return current + diff
}
