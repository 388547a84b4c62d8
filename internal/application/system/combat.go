package system

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

const (
	headPromoteWindow   = 600 * time.Millisecond
	headPromoteNudge    = 2
	segmentImpulseShare = 0.5
	mobProjectileMass   = 0.6
	mobProjectileKick   = 8
	playerShotMass      = 0.5
	playerShotKick      = 6
	dropSpacing         = 15
	templateDropStepX   = 22
	templateDropStepY   = 8
	templateDropShift   = 10
)

// CombatSystem resolves every damaging and collecting interaction
type CombatSystem struct {
	config  *config.CombatConfig
	brood   config.BroodConfig
	physics *PhysicsSystem
	factory *MobFactory

	// Event callbacks
	OnMobKilled   func(m *entity.Mob)
	OnPickup      func(d *entity.Drop)
	OnPlayerDeath func()
	OnFault       func(m *entity.Mob, err any)
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.CombatConfig, brood config.BroodConfig, physics *PhysicsSystem, factory *MobFactory) *CombatSystem {
	return &CombatSystem{
		config:  cfg,
		brood:   brood,
		physics: physics,
		factory: factory,
	}
}

// Update moves player projectiles and resolves collisions
func (s *CombatSystem) Update(w *World) {
	s.updateProjectiles(w)
	s.CheckCollisions(w)
}

func (s *CombatSystem) updateProjectiles(w *World) {
	margin := s.config.OffscreenMargin
	w.Projectiles = slices.DeleteFunc(w.Projectiles, func(p *entity.Projectile) bool {
		p.Update()
		return !w.Arena.Contains(p.X, p.Y, margin)
	})
	for _, m := range w.Mobs {
		m.Projectiles = slices.DeleteFunc(m.Projectiles, func(p *entity.Projectile) bool {
			return !w.Arena.Contains(p.X, p.Y, margin)
		})
	}
}

// CheckCollisions runs one full collision pass. Mobs whose health is spent
// are removed exactly once, after every other interaction for that mob.
func (s *CombatSystem) CheckCollisions(w *World) {
	if w.Dead {
		return
	}

	for mi := len(w.Mobs) - 1; mi >= 0; mi-- {
		m := w.Mobs[mi]
		s.guard(m, func() { s.collideMob(w, m) })
		if m.IsDead() {
			s.kill(w, m)
			w.Mobs = slices.Delete(w.Mobs, mi, mi+1)
		}
	}

	s.collideProjectiles(w)
	s.collectDrops(w)

	if !w.Player.IsAlive() {
		w.Dead = true
		if s.OnPlayerDeath != nil {
			s.OnPlayerDeath()
		}
	}
}

func (s *CombatSystem) guard(m *entity.Mob, fn func()) {
	defer func() {
		if r := recover(); r != nil && s.OnFault != nil {
			s.OnFault(m, r)
		}
	}()
	fn()
}

func (s *CombatSystem) collideMob(w *World, m *entity.Mob) {
	s.meleePlayer(w, m)
	s.petalsHit(w, m)
	s.mobProjectilesHit(w, m)
	s.trackBurrow(w, m)
}

// meleePlayer separates the player from the mob and applies contact damage
// at most once per invulnerability window
func (s *CombatSystem) meleePlayer(w *World, m *entity.Mob) {
	p := w.Player
	if !s.physics.ResolvePlayerMob(p, m) {
		return
	}
	if !p.LastHit.Elapsed(w.Now, s.config.PlayerIframes()) {
		return
	}
	damage := s.config.ContactDamageFor(func(tag string) bool {
		return strings.EqualFold(m.Type, tag)
	})
	p.TakeDamage(damage)
	p.HitFlashUntil = w.Now + s.config.HitFlash()
	p.LastHit.Mark(w.Now)
}

func (s *CombatSystem) petalsHit(w *World, m *entity.Mob) {
	p := w.Player
	cooldown := s.config.PetalHitCooldown()

	for pi, petal := range w.Petals {
		px, py := petal.Position(p.X, p.Y, p.PetalDistance)

		if m.IsChain() {
			for si := len(m.Segments) - 1; si >= 0; si-- {
				seg := m.Segments[si]
				if entity.Distance(px, py, seg.X, seg.Y) >= petal.Radius+seg.Radius {
					continue
				}
				key := entity.PetalHitKey{Petal: pi, Segment: seg.ID}
				if !m.PetalHits.ReadyStrict(key, w.Now, cooldown) {
					continue
				}
				seg.HP -= s.config.PetalDamage
				m.PetalHits.Mark(key, w.Now)
				m.HitFlashUntil = w.Now + s.config.HitFlash()
				if seg.HP <= 0 {
					m.RemoveSegment(si, w.Now, headPromoteWindow, headPromoteNudge)
				}
			}
			continue
		}

		if entity.Distance(px, py, m.X, m.Y) >= petal.Radius+m.Radius {
			continue
		}
		key := entity.PetalHitKey{Petal: pi}
		if !m.PetalHits.ReadyStrict(key, w.Now, cooldown) {
			continue
		}
		m.TakeDamage(s.config.PetalDamage, w.Now, s.config.HitFlash())
		m.PetalHits.Mark(key, w.Now)
		provoke(m)
	}
}

// mobProjectilesHit applies mob shots to the player. This channel ignores
// the melee invulnerability window.
func (s *CombatSystem) mobProjectilesHit(w *World, m *entity.Mob) {
	p := w.Player
	for i := len(m.Projectiles) - 1; i >= 0; i-- {
		proj := m.Projectiles[i]
		if !entity.Overlaps(p, proj) {
			continue
		}
		damage := proj.Damage
		if damage <= 0 {
			damage = 1
		}
		p.TakeDamage(damage)
		p.HitFlashUntil = w.Now + s.config.HitFlash()
		Knockback(p.X, p.Y, proj.X, proj.Y, &p.VX, &p.VY, proj.MassOr(mobProjectileMass)/massOf(p.Mass)*mobProjectileKick)
		m.Projectiles = slices.Delete(m.Projectiles, i, i+1)
	}
}

// trackBurrow releases a small brood each time cumulative damage crosses
// another threshold share of max health
func (s *CombatSystem) trackBurrow(w *World, m *entity.Mob) {
	b := m.Burrow
	if b == nil || s.factory == nil {
		return
	}
	if dmg := b.LastHealth - m.Health; dmg > 0 {
		b.Accum += dmg
		maxHP := math.Max(1, m.MaxHealth)
		ticks := int(math.Floor(b.Accum/maxHP/s.brood.Threshold + 1e-9))
		for b.Ticks < ticks {
			w.AddMob(s.factory.Brood(s.brood.Ant, m.X, m.Y, 20))
			w.AddMob(s.factory.Brood(s.brood.Ant, m.X, m.Y, 20))
			w.AddMob(s.factory.Brood(s.brood.Worker, m.X, m.Y, 20))
			b.Ticks++
		}
	}
	b.LastHealth = m.Health
}

func (s *CombatSystem) collideProjectiles(w *World) {
	for pi := len(w.Projectiles) - 1; pi >= 0; pi-- {
		proj := w.Projectiles[pi]
		if s.projectileHit(w, proj) {
			w.Projectiles = slices.Delete(w.Projectiles, pi, pi+1)
		}
	}
}

// projectileHit applies proj to the first mob it touches, newest first
func (s *CombatSystem) projectileHit(w *World, proj *entity.Projectile) bool {
	for mi := len(w.Mobs) - 1; mi >= 0; mi-- {
		m := w.Mobs[mi]
		hit := false

		if m.IsChain() {
			for si := len(m.Segments) - 1; si >= 0; si-- {
				seg := m.Segments[si]
				if !entity.Overlaps(proj, seg) {
					continue
				}
				seg.HP -= proj.Damage
				seg.ImpulseX += proj.DX * segmentImpulseShare
				seg.ImpulseY += proj.DY * segmentImpulseShare
				m.HitFlashUntil = w.Now + s.config.HitFlash()
				if seg.HP <= 0 {
					m.RemoveSegment(si, w.Now, headPromoteWindow, headPromoteNudge)
				}
				hit = true
				break
			}
		} else if entity.Overlaps(proj, m) {
			m.TakeDamage(proj.Damage, w.Now, s.config.HitFlash())
			Knockback(m.X, m.Y, proj.X, proj.Y, &m.VX, &m.VY, proj.MassOr(playerShotMass)/massOf(m.Mass)*playerShotKick)
			provoke(m)
			hit = true
		}

		if !hit {
			continue
		}
		if m.IsDead() {
			s.kill(w, m)
			w.Mobs = slices.Delete(w.Mobs, mi, mi+1)
		}
		return true
	}
	return false
}

func (s *CombatSystem) collectDrops(w *World) {
	p := w.Player
	w.Drops = slices.DeleteFunc(w.Drops, func(d *entity.Drop) bool {
		if !entity.Overlaps(p, d) {
			return false
		}
		p.AddItem(d.Type, d.Rarity, max(1, d.Stack))
		if s.OnPickup != nil {
			s.OnPickup(d)
		}
		return true
	})
}

// kill runs the one-time death effects for a mob leaving the live list
func (s *CombatSystem) kill(w *World, m *entity.Mob) {
	if m.Burrow != nil && s.factory != nil {
		for i := 0; i < 3; i++ {
			w.AddMob(s.factory.Brood(s.brood.Ant, m.X, m.Y, 40))
		}
		for i := 0; i < 2; i++ {
			w.AddMob(s.factory.Brood(s.brood.Worker, m.X, m.Y, 45))
		}
		w.AddMob(s.factory.Brood(s.brood.Baby, m.X+6, m.Y+6, 0))
		w.AddMob(s.factory.Brood(s.brood.Queen, m.X-12, m.Y-12, 0))
	}

	s.spawnDrops(w, m)
	w.Player.Kills[m.Name]++
	if s.OnMobKilled != nil {
		s.OnMobKilled(m)
	}
}

// spawnDrops scatters the mob's drops. Template drops fan out around the
// mob with its rarity; built-in archetype drops are Common and stepped diagonally.
func (s *CombatSystem) spawnDrops(w *World, m *entity.Mob) {
	n := float64(len(m.Drops))
	for i, itemType := range m.Drops {
		fi := float64(i)
		d := &entity.Drop{
			X:      m.X + fi*dropSpacing,
			Y:      m.Y + fi*dropSpacing,
			Radius: s.config.DropRadius,
			Type:   itemType,
			Rarity: entity.RarityNames[0],
			Stack:  1,
		}
		if m.TemplateDrops {
			d.X = m.X + fi*templateDropStepX - n*templateDropShift
			d.Y = m.Y + fi*templateDropStepY
			if m.RarityName != "" {
				d.Rarity = m.RarityName
			}
		}
		w.Drops = append(w.Drops, d)
	}
}

// provoke makes bee-type mobs permanently aggressive
func provoke(m *entity.Mob) {
	if m.Is("bee") {
		m.Aggressive = true
	}
}
