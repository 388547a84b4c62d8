package system

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

var ErrUnknownRarity = errors.New("unknown rarity")

const (
	chainMass          = 9999
	defaultSegments    = 8
	defaultPatrolRange = 64
	templatePatrol     = 72
)

// SpawnDescriptor is a mob rolled for a wave but not yet placed
type SpawnDescriptor struct {
	Template    *config.MobTemplate
	X, Y        float64
	RarityIndex int
	RarityName  string
	Multiplier  float64
	Wave        int
}

// WaveScheduler trickles a wave's batch into the world one spawn per interval.
// At most one schedule is active; it stays pending for one interval after the
// last spawn, so a wave cannot be cleared before its final mob appears.
type WaveScheduler struct {
	queue   []SpawnDescriptor
	spacing time.Duration
	elapsed time.Duration
	active  bool
}

// Start replaces any pending schedule
func (s *WaveScheduler) Start(batch []SpawnDescriptor, spacing time.Duration) {
	if spacing <= 0 {
		spacing = time.Millisecond
	}
	s.queue = append(s.queue[:0], batch...)
	s.spacing = spacing
	s.elapsed = 0
	s.active = true
}

// Cancel drops the pending schedule
func (s *WaveScheduler) Cancel() {
	s.queue = s.queue[:0]
	s.elapsed = 0
	s.active = false
}

// Pending reports whether a schedule is still running
func (s *WaveScheduler) Pending() bool {
	return s.active
}

// Remaining returns the number of queued spawns
func (s *WaveScheduler) Remaining() int {
	return len(s.queue)
}

// Advance moves the schedule forward by dt and returns the spawns that came due
func (s *WaveScheduler) Advance(dt time.Duration) []SpawnDescriptor {
	if !s.active {
		return nil
	}
	s.elapsed += dt

	var due []SpawnDescriptor
	for s.active && s.elapsed >= s.spacing {
		s.elapsed -= s.spacing
		if len(s.queue) == 0 {
			s.active = false
			break
		}
		due = append(due, s.queue[0])
		s.queue = s.queue[1:]
	}
	return due
}

// MobFactory builds mobs from templates, fallback archetypes and brood tables
type MobFactory struct {
	mobs   *config.MobsConfig
	spawn  config.SpawnConfig
	table  entity.RarityTable
	rng    *rand.Rand
	arena  entity.Arena
	nextID func() entity.EntityID
}

// NewMobFactory creates a mob factory
func NewMobFactory(cfg *config.GameConfig, arena entity.Arena, rng *rand.Rand, nextID func() entity.EntityID) *MobFactory {
	table := entity.DefaultRarityTable()
	if len(cfg.Mobs.SpawnBands) > 0 {
		table = entity.RarityTable{}
		for _, b := range cfg.Mobs.SpawnBands {
			table.Bands = append(table.Bands, entity.RarityBand{MaxWave: b.MaxWave, Weights: b.Weights})
		}
	}
	return &MobFactory{
		mobs:   cfg.Mobs,
		spawn:  cfg.Tuning.Spawn,
		table:  table,
		rng:    rng,
		arena:  arena,
		nextID: nextID,
	}
}

// maxRarity returns the highest ladder index available
func (f *MobFactory) maxRarity() int {
	if n := len(f.mobs.Rarities); n > 0 {
		return n - 1
	}
	return len(entity.RarityNames) - 1
}

// tier resolves a rarity index to its name and multiplier, preferring config tiers
func (f *MobFactory) tier(index int) (string, float64) {
	if index >= 0 && index < len(f.mobs.Rarities) {
		t := f.mobs.Rarities[index]
		name := t.Name
		if name == "" {
			name = entity.RarityName(index)
		}
		mult := t.Multiplier
		if mult <= 0 {
			mult = entity.RarityMultiplier(index)
		}
		return name, mult
	}
	return entity.RarityName(index), entity.RarityMultiplier(index)
}

// Roll computes the full spawn batch for a wave
func (f *MobFactory) Roll(wave int) []SpawnDescriptor {
	count := f.spawn.BatchSize(wave)
	batch := make([]SpawnDescriptor, 0, count)

	for i := 0; i < count; i++ {
		d := SpawnDescriptor{
			X:    f.rng.Float64() * f.arena.Width,
			Y:    f.rng.Float64() * f.arena.Height,
			Wave: wave,
		}

		idx := f.table.Pick(f.rng, wave)
		if n := len(f.mobs.Mobs); n > 0 {
			tpl := &f.mobs.Mobs[f.rng.Intn(n)]
			d.Template = tpl
			if tpl.BaseRarity > 0 && idx < tpl.BaseRarity {
				idx = tpl.BaseRarity
			}
		}
		if idx > f.maxRarity() {
			idx = f.maxRarity()
		}

		d.RarityIndex = idx
		d.RarityName, d.Multiplier = f.tier(idx)
		batch = append(batch, d)
	}
	return batch
}

// Build turns a descriptor into a live mob
func (f *MobFactory) Build(d SpawnDescriptor) *entity.Mob {
	if d.Template != nil {
		return f.fromTemplate(d)
	}
	return f.fallback(d)
}

func (f *MobFactory) fromTemplate(d SpawnDescriptor) *entity.Mob {
	tpl := d.Template
	ri := float64(d.RarityIndex)

	hp := math.Max(6, math.Round(orDefault(tpl.BaseHP, 30)*d.Multiplier*(1+float64(d.Wave)*f.spawn.HPGrowthPerWave)))
	dmg := math.Max(1, math.Round(orDefault(tpl.BaseDamage, 2)*d.Multiplier))
	size := math.Max(8, math.Round(orDefault(tpl.BaseSize, 12)*(1+ri*0.07)))
	speed := tpl.BaseSpeed
	if speed <= 0 {
		speed = math.Max(0.6, 1.6-ri*0.04)
	}
	speed = math.Max(0.2, speed)

	mobType := tpl.ID
	if mobType == "" {
		mobType = tpl.Name
	}

	m := entity.NewMob(f.nextID(), d.X, d.Y, mobType)
	if tpl.Name != "" {
		m.Name = tpl.Name
	}
	m.SpriteKey = tpl.Sprite
	m.RarityIndex = d.RarityIndex
	m.RarityName = d.RarityName
	m.Speed = speed
	m.Damage = dmg
	m.Drops = append([]string(nil), tpl.Drops...)
	m.TemplateDrops = len(m.Drops) > 0
	m.Stationary = tpl.Stationary

	if strings.EqualFold(mobType, "centipede") {
		f.makeChain(m, tpl.Segments, size, hp)
		return m
	}

	m.Radius = size
	m.Health = hp
	m.MaxHealth = hp
	m.Mass = math.Max(1, math.Round(size*(1+ri*0.06)))

	shootCd := 0
	if tpl.ShootCooldown != nil {
		shootCd = *tpl.ShootCooldown
	} else if strings.EqualFold(mobType, "hornet") {
		shootCd = f.spawn.FallbackShootRate
	}

	patrol := !tpl.Stationary && strings.Contains(strings.ToLower(mobType), "ant")
	if tpl.Patrol != nil {
		patrol = *tpl.Patrol
	}
	patrolRange := orDefault(tpl.PatrolRange, templatePatrol)
	if patrol && m.SpriteKey == "" {
		m.SpriteKey = "mandible"
	}

	f.assignBehavior(m, patrol, patrolRange, shootCd)
	f.attachBurrow(m)
	return m
}

// makeChain lays out segments trailing to the left of the spawn point
func (f *MobFactory) makeChain(m *entity.Mob, segments int, size, hp float64) {
	if segments <= 0 {
		segments = defaultSegments
	}
	segRadius := math.Max(6, math.Round(size*0.6))
	segHP := math.Max(6, math.Round(hp/float64(segments)))

	m.Behavior = &entity.ChainBehavior{}
	m.Mass = chainMass
	m.Radius = segRadius
	m.Health = segHP * float64(segments)
	m.MaxHealth = m.Health
	m.Segments = make([]*entity.Segment, 0, segments)
	for i := 0; i < segments; i++ {
		m.Segments = append(m.Segments, &entity.Segment{
			ID:     f.nextID(),
			X:      m.X - float64(i)*size*0.9,
			Y:      m.Y,
			Radius: segRadius,
			HP:     segHP,
			MaxHP:  segHP,
		})
	}
}

// fallback builds one of the four stock archetypes
func (f *MobFactory) fallback(d SpawnDescriptor) *entity.Mob {
	choice := f.rng.Float64()
	mult := d.Multiplier
	scale := 1 + float64(d.RarityIndex)*0.06
	slow := math.Max(1, mult*0.8)

	var (
		name              string
		baseR, baseS, hpK float64
		stationary        bool
		shootCd           int
		drops             []string
	)
	switch {
	case choice < 0.25:
		name, baseR, baseS, hpK = "Ladybug", 12, 1.5, 50
		drops = []string{"Rose", "Light"}
	case choice < 0.5:
		name, baseR, baseS, hpK = "Bee", 10, 2, 30
		drops = []string{"Stinger", "Pollen"}
	case choice < 0.75:
		name, baseR, baseS, hpK = "Hornet", 12, 1.2, 40
		shootCd = f.spawn.FallbackShootRate
		drops = []string{"Missile"}
	default:
		name, baseR, hpK = "Dandelion", 18, 30
		stationary = true
	}

	m := entity.NewMob(f.nextID(), d.X, d.Y, name)
	m.Radius = math.Round(baseR * scale)
	m.Mass = m.Radius
	m.Health = math.Round(hpK * mult)
	m.MaxHealth = m.Health
	if !stationary {
		m.Speed = math.Max(0.2, baseS/slow)
	}
	m.Stationary = stationary
	m.RarityIndex = d.RarityIndex
	m.RarityName = d.RarityName
	m.Drops = drops
	if name == "Hornet" {
		m.SpriteKey = "hornet"
	}

	f.assignBehavior(m, false, defaultPatrolRange, shootCd)
	return m
}

// assignBehavior classifies a mob into its behavior variant and seeds its state
func (f *MobFactory) assignBehavior(m *entity.Mob, patrol bool, patrolRange float64, shootCd int) {
	if m.Stationary {
		m.Behavior = &entity.StationaryBehavior{}
		return
	}
	if patrol {
		dir := 1.0
		if f.rng.Float64() < 0.5 {
			dir = -1
		}
		m.Behavior = &entity.PatrolBehavior{
			Dir:    dir,
			Center: m.X,
			Range:  orDefault(patrolRange, defaultPatrolRange),
			Phase:  f.rng.Float64() * 2 * math.Pi,
		}
		return
	}

	switch strings.ToLower(m.Type) {
	case "hornet":
		reset := shootCd
		if reset <= 0 {
			reset = f.spawn.FallbackShootRate
		}
		m.Behavior = &entity.RangedBehavior{Cooldown: reset, Reset: reset}
	case "bee", "ladybug":
		m.Behavior = &entity.WanderBehavior{Dir: f.rng.Float64() * 2 * math.Pi}
	case "spider":
		m.Behavior = &entity.LungeBehavior{Cooldown: 60 + f.rng.Intn(180)}
	case "ant":
		m.Behavior = &entity.ChargeBehavior{Cooldown: 40 + f.rng.Intn(120)}
	case "snail":
		m.Behavior = &entity.ChaseBehavior{SpeedFactor: 0.6}
	default:
		m.Behavior = &entity.ChaseBehavior{SpeedFactor: 1}
	}
}

// attachBurrow marks brood-spawning mobs
func (f *MobFactory) attachBurrow(m *entity.Mob) {
	if m.Is("ant") && m.Is("burrow") {
		m.Burrow = &entity.BurrowState{LastHealth: m.MaxHealth}
	}
}

// Brood builds a fixed-stat mob released by a burrow near (x, y)
func (f *MobFactory) Brood(b config.BroodMob, x, y, spread float64) *entity.Mob {
	if spread > 0 {
		x += f.rng.Float64()*spread*2 - spread
		y += f.rng.Float64()*spread*2 - spread
	}
	m := entity.NewMob(f.nextID(), x, y, strings.ToLower(strings.ReplaceAll(b.Name, " ", "-")))
	m.Name = b.Name
	m.Radius = b.Radius
	m.Speed = b.Speed
	m.Health = b.HP
	m.MaxHealth = b.HP
	m.Mass = b.Mass
	m.RarityIndex = b.RarityIndex
	m.RarityName, _ = f.tier(b.RarityIndex)
	if b.Patrol {
		m.SpriteKey = "mandible"
	}
	f.assignBehavior(m, b.Patrol, defaultPatrolRange, 0)
	return m
}

// Named builds a mob by name and rarity for the debug console
func (f *MobFactory) Named(name, rarity string, x, y float64) (*entity.Mob, error) {
	ri := entity.RarityIndex(rarity)
	if ri < 0 {
		return nil, fmt.Errorf("failed to spawn %s: %w: %q", name, ErrUnknownRarity, rarity)
	}
	mult := entity.RarityMultiplier(ri)

	x += f.rng.Float64()*400 - 200
	y += f.rng.Float64()*400 - 200
	x, y = f.arena.Clamp(x, y, 0)

	m := entity.NewMob(f.nextID(), x, y, name)
	m.Radius = math.Max(8, math.Round(12*(1+float64(ri)*0.06)))
	m.Mass = math.Round(m.Radius * (1 + float64(ri)*0.06))
	m.Health = math.Max(6, math.Round(30*mult))
	m.MaxHealth = m.Health
	m.Speed = math.Max(0.2, 1.2-float64(ri)*0.02)
	m.RarityIndex = ri
	m.RarityName = entity.RarityNames[ri]
	for i := range f.mobs.Mobs {
		tpl := &f.mobs.Mobs[i]
		if strings.EqualFold(tpl.ID, name) || strings.EqualFold(tpl.Name, name) {
			m.Drops = append([]string(nil), tpl.Drops...)
			m.TemplateDrops = len(m.Drops) > 0
			m.Stationary = tpl.Stationary
			break
		}
	}

	if strings.EqualFold(name, "centipede") {
		f.makeChain(m, defaultSegments, m.Radius, m.Health)
		return m, nil
	}
	f.assignBehavior(m, false, defaultPatrolRange, 0)
	f.attachBurrow(m)
	return m, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
