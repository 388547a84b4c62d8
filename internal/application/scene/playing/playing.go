// Package playing provides the main arena scene.
package playing

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/younwookim/petalarena/internal/application/game"
	"github.com/younwookim/petalarena/internal/application/scene"
	"github.com/younwookim/petalarena/internal/application/state"
	"github.com/younwookim/petalarena/internal/application/system"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
)

// Options configures the Playing scene
type Options struct {
	// Commands delivers debug console lines from other goroutines
	Commands <-chan string
	Mode     system.ControlMode
	Logger   *zerolog.Logger
}

// Controls is one frame of host input on top of the simulation input
type Controls struct {
	system.InputState

	Pause      bool
	Respawn    bool
	ToggleMode bool
	Craft      bool
	Quit       bool
}

// Playing is the main arena scene
type Playing struct {
	sim      *system.Simulation
	state    state.GameState
	mode     system.ControlMode
	commands <-chan string
	log      zerolog.Logger
	icons    *iconCache
	started  bool

	screenW int
	screenH int
	dt      time.Duration

	// status is the last console result shown in the HUD
	status string
}

// New creates a new Playing scene around sim.
// The simulation is started on the first OnEnter.
func New(sim *system.Simulation, cfg *config.GameConfig, opts Options) *Playing {
	if cfg == nil {
		cfg = config.Default()
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	display := cfg.Tuning.Display

	return &Playing{
		sim:      sim,
		state:    state.StatePlaying,
		mode:     opts.Mode,
		commands: opts.Commands,
		log:      log,
		icons:    newIconCache(iconSize),
		screenW:  display.ScreenWidth,
		screenH:  display.ScreenHeight,
		dt:       time.Second / 60,
	}
}

// State returns the current scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Mode returns the active control mode
func (p *Playing) Mode() system.ControlMode {
	return p.mode
}

// Status returns the last console result
func (p *Playing) Status() string {
	return p.status
}

// Update reads input and proceeds the arena (implements scene.Scene)
func (p *Playing) Update(dt time.Duration) (scene.Scene, error) {
	p.dt = dt
	return p.step(readControls(p.mode))
}

// step applies one frame of controls
func (p *Playing) step(c Controls) (scene.Scene, error) {
	if c.ToggleMode {
		p.toggleMode()
	}
	p.drainCommands()
	if c.Quit {
		return nil, game.ErrQuit
	}

	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(c)
	case state.StatePaused:
		if c.Pause {
			p.state = state.StatePlaying
		}
	case state.StateDead:
		if c.Respawn {
			p.respawn()
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(c Controls) {
	if c.Pause {
		p.state = state.StatePaused
		return
	}
	if c.Craft {
		if err := p.sim.Apply(system.CraftIntent{}); err != nil {
			p.status = err.Error()
		}
	}

	in := c.InputState
	in.Mode = p.mode
	p.sim.Tick(in, p.dt)

	if p.sim.World.Dead {
		p.state = state.StateDead
	}
}

func (p *Playing) respawn() {
	if err := p.sim.Apply(system.RespawnIntent{}); err != nil {
		p.log.Warn().Err(err).Msg("respawn rejected")
		return
	}
	p.state = state.StatePlaying
	p.status = ""
}

func (p *Playing) toggleMode() {
	if p.mode == system.ControlPointer {
		p.mode = system.ControlKeyboard
	} else {
		p.mode = system.ControlPointer
	}
	p.log.Info().Stringer("mode", p.mode).Msg("control mode changed")
}

// drainCommands runs every queued console line without blocking
func (p *Playing) drainCommands() {
	if p.commands == nil {
		return
	}
	for {
		select {
		case line, ok := <-p.commands:
			if !ok {
				p.commands = nil
				return
			}
			p.runCommand(line)
		default:
			return
		}
	}
}

func (p *Playing) runCommand(line string) {
	msg, err := p.sim.Execute(line)
	if err != nil {
		p.log.Warn().Err(err).Str("command", line).Msg("command failed")
		p.status = err.Error()
		return
	}
	p.log.Info().Str("command", line).Msg(msg)
	p.status = msg
}

// OnEnter starts the simulation the first time the scene is shown
func (p *Playing) OnEnter() {
	if p.started {
		return
	}
	p.started = true
	p.sim.Start()
	p.log.Info().Str("run", p.sim.RunID.String()).Int64("seed", p.sim.Seed).Msg("arena started")
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	snap := p.sim.Snapshot()
	p.log.Info().
		Int("wave", snap.Wave).
		Int("frame", snap.Frame).
		Interface("kills", snap.Kills).
		Msg("arena closed")
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
