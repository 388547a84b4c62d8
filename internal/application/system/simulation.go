package system

import (
	"errors"
	"fmt"
	"maps"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

// ErrNotDead is returned when respawning a living player
var ErrNotDead = errors.New("player is alive")

// LoadoutSink persists the player's loadout
type LoadoutSink interface {
	SaveLoadout(l entity.Loadout) error
}

// Options configures a Simulation
type Options struct {
	Seed int64
	// Logger defaults to a disabled logger
	Logger *zerolog.Logger
	// Hooks resolves item equip and unequip hook names
	Hooks *HookRegistry
	// Loadout restores a saved inventory before the first wave
	Loadout *entity.Loadout
	// Sink receives every loadout change
	Sink LoadoutSink
}

// Snapshot is a read-only summary of the world after a tick
type Snapshot struct {
	RunID       uuid.UUID
	Frame       int
	Now         time.Duration
	Wave        int
	Dead        bool
	Health      float64
	MaxHealth   float64
	Mobs        int
	Projectiles int
	Drops       int
	Pending     int
	Kills       map[string]int
}

// Simulation drives one run of the arena at a fixed step.
// It is not safe for concurrent use.
type Simulation struct {
	World *World
	RunID uuid.UUID
	Seed  int64

	config    *config.GameConfig
	items     entity.ItemRegistry
	rng       *rand.Rand
	scheduler *WaveScheduler
	factory   *MobFactory
	physics   *PhysicsSystem
	input     *InputSystem
	behavior  *BehaviorSystem
	petals    *PetalSystem
	equip     *EquipSystem
	combat    *CombatSystem
	log       zerolog.Logger
	sink      LoadoutSink
	dirty     bool

	// OnInventoryChange receives the loadout whenever items move
	OnInventoryChange func(l entity.Loadout)
	// OnPlayerDeath is called once when the player dies
	OnPlayerDeath func(wave int)
}

// NewSimulation wires every system around a fresh world
func NewSimulation(cfg *config.GameConfig, opts Options) *Simulation {
	if cfg == nil {
		cfg = config.Default()
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	world := NewWorld(LoadArena(&cfg.Tuning.Display), LoadPlayerStats(&cfg.Tuning.Player))
	items := LoadItems(cfg.Items)
	physics := NewPhysicsSystem()
	factory := NewMobFactory(cfg, world.Arena, rng, world.NextID)

	s := &Simulation{
		World:     world,
		RunID:     uuid.New(),
		Seed:      opts.Seed,
		config:    cfg,
		items:     items,
		rng:       rng,
		scheduler: &WaveScheduler{},
		factory:   factory,
		physics:   physics,
		input:     NewInputSystem(),
		behavior:  NewBehaviorSystem(rng, physics),
		petals:    NewPetalSystem(&cfg.Tuning.Player),
		equip:     NewEquipSystem(items, &cfg.Tuning.Combat, opts.Hooks),
		combat:    NewCombatSystem(&cfg.Tuning.Combat, cfg.Mobs.Brood, physics, factory),
		sink:      opts.Sink,
	}
	s.log = log.With().Str("run", s.RunID.String()).Logger()

	s.behavior.OnFault = s.fault
	s.combat.OnFault = s.fault
	s.combat.OnPickup = func(d *entity.Drop) {
		s.log.Debug().Str("item", d.Type).Str("rarity", d.Rarity).Msg("picked up")
		s.dirty = true
	}
	s.combat.OnMobKilled = func(m *entity.Mob) {
		s.log.Debug().Str("mob", m.Name).Str("rarity", m.RarityName).Msg("mob killed")
	}
	s.combat.OnPlayerDeath = func() {
		s.log.Info().Int("wave", s.World.Wave).Int("frame", s.World.Frame).Msg("player died")
		if s.OnPlayerDeath != nil {
			s.OnPlayerDeath(s.World.Wave)
		}
	}
	s.equip.OnHookError = func(err error) {
		s.log.Warn().Err(err).Msg("equip hook failed")
	}

	if opts.Loadout != nil {
		world.Player.ApplyLoadout(*opts.Loadout)
	}
	return s
}

// Items returns the item registry in use
func (s *Simulation) Items() entity.ItemRegistry {
	return s.items
}

// Hooks returns the equip hook registry
func (s *Simulation) Hooks() *HookRegistry {
	return s.equip.Hooks()
}

func (s *Simulation) fault(m *entity.Mob, err any) {
	ev := s.log.Error().Str("mob", m.Name).Uint32("id", uint32(m.ID))
	if m.Behavior != nil {
		ev = ev.Stringer("behavior", m.Behavior.Kind())
	}
	ev.Interface("panic", err).Msg("mob update failed")
}

// Start lays out the petals and schedules the current wave
func (s *Simulation) Start() {
	s.petals.Refresh(s.World)
	s.StartWave()
}

// StartWave schedules the spawn batch for the current wave, replacing any pending one
func (s *Simulation) StartWave() {
	w := s.World
	batch := s.factory.Roll(w.Wave)
	spacing := s.config.Tuning.Spawn.Spacing(w.Wave)
	s.scheduler.Start(batch, spacing)
	s.log.Info().Int("wave", w.Wave).Int("mobs", len(batch)).Dur("spacing", spacing).Msg("wave started")
}

// SetWave jumps to wave n, replacing the pending schedule. Live mobs stay.
func (s *Simulation) SetWave(n int) {
	if n < 1 {
		n = 1
	}
	s.scheduler.Cancel()
	s.World.Wave = n
	s.StartWave()
}

// Tick advances the world by one frame of length dt
func (s *Simulation) Tick(in InputState, dt time.Duration) {
	w := s.World
	if w.Dead {
		return
	}
	w.Now += dt
	w.Frame++

	for _, d := range s.scheduler.Advance(dt) {
		w.AddMob(s.factory.Build(d))
	}
	for _, intent := range IntentsFrom(in) {
		if err := s.Apply(intent); err != nil {
			s.log.Debug().Err(err).Msg("intent rejected")
		}
	}

	s.input.UpdatePlayer(w.Player, in, w.Arena)
	s.behavior.Update(w)
	s.petals.Update(w, in.Expand)
	s.combat.Update(w)
	s.equip.ApplyPassive(w)

	if !w.Dead && len(w.Mobs) == 0 && !s.scheduler.Pending() {
		w.Wave++
		s.StartWave()
	}
	s.flush()
}

// Apply performs a discrete action. Combat actions are ignored while dead.
func (s *Simulation) Apply(intent Intent) error {
	w := s.World
	var err error

	switch it := intent.(type) {
	case AttackIntent:
		if !w.Dead {
			s.equip.Attack(w, it.X, it.Y)
		}
	case UseItemIntent:
		if !w.Dead && s.equip.UseNext(w, it.AimX, it.AimY, it.HasAim) {
			s.dirty = true
		}
	case SwapRowIntent:
		err = s.equip.SwapRows(w, it.Index)
		s.dirty = err == nil
	case EquipIntent:
		_, err = s.equip.Equip(w, it.InventoryIndex)
		s.dirty = err == nil
	case UnequipIntent:
		err = s.equip.Unequip(w, it.Ref)
		s.dirty = err == nil
	case MoveSlotIntent:
		err = s.equip.MoveSlot(w, it.From, it.To)
		s.dirty = err == nil
	case CraftIntent:
		_, err = w.Player.Craft()
		s.dirty = err == nil
	case RespawnIntent:
		err = s.Respawn()
	case CommandIntent:
		var msg string
		msg, err = s.Execute(it.Line)
		if err == nil {
			s.log.Info().Str("command", it.Line).Msg(msg)
		}
	default:
		err = fmt.Errorf("unsupported intent %T", intent)
	}

	s.flush()
	return err
}

// Respawn revives a dead player at the arena center and restarts the current wave
func (s *Simulation) Respawn() error {
	w := s.World
	if !w.Dead {
		return ErrNotDead
	}
	s.scheduler.Cancel()
	w.Clear()
	w.Player.Respawn(w.Arena.CenterX(), w.Arena.CenterY())
	w.Dead = false
	s.petals.Refresh(w)
	s.StartWave()
	s.log.Info().Int("wave", w.Wave).Msg("respawned")
	return nil
}

// Snapshot summarizes the current world
func (s *Simulation) Snapshot() Snapshot {
	w := s.World
	return Snapshot{
		RunID:       s.RunID,
		Frame:       w.Frame,
		Now:         w.Now,
		Wave:        w.Wave,
		Dead:        w.Dead,
		Health:      w.Player.Health,
		MaxHealth:   w.Player.MaxHealth,
		Mobs:        len(w.Mobs),
		Projectiles: len(w.Projectiles),
		Drops:       len(w.Drops),
		Pending:     s.scheduler.Remaining(),
		Kills:       maps.Clone(w.Player.Kills),
	}
}

func (s *Simulation) inventoryChanged() {
	s.dirty = true
	s.flush()
}

func (s *Simulation) flush() {
	if !s.dirty {
		return
	}
	s.dirty = false
	l := s.World.Player.Loadout()
	if s.sink != nil {
		if err := s.sink.SaveLoadout(l); err != nil {
			s.log.Warn().Err(err).Msg("failed to save loadout")
		}
	}
	if s.OnInventoryChange != nil {
		s.OnInventoryChange(l)
	}
}
