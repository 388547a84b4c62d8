package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/younwookim/petalarena/internal/application/game"
	"github.com/younwookim/petalarena/internal/application/scene/playing"
	"github.com/younwookim/petalarena/internal/application/system"
	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
	"github.com/younwookim/petalarena/internal/infrastructure/logging"
	"github.com/younwookim/petalarena/internal/infrastructure/persistence"
)

//go:embed configs
var configFS embed.FS

func main() {
	envFile := flag.String("env", ".env", "Environment file with PETAL_* overrides")
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	savePath := flag.String("save", "", "Profile path; .msgpack selects the binary format")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time based)")
	console := flag.Bool("console", true, "Read $ debug commands from stdin")
	flag.Parse()

	env, envErr := config.LoadEnv(*envFile)
	log := logging.Console(env.LogLevel, "game")
	if envErr != nil {
		log.Warn().Err(envErr).Msg("environment not fully loaded")
	}

	cfg, err := loadConfig(firstNonEmpty(*configDir, env.ConfigDir))
	if err != nil {
		log.Warn().Err(err).Msg("using built-in defaults for some config files")
	}

	runSeed := *seed
	if runSeed == 0 && env.HasSeed {
		runSeed = env.Seed
	}
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	mode, err := system.ParseControlMode(env.ControlMode)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to keyboard controls")
	}

	store := persistence.NewFileStore(firstNonEmpty(*savePath, env.SavePath))
	loadout := loadProfile(store, log)

	hooks := system.NewHookRegistry()
	hooks.Register("log", func(p *entity.Player, ref entity.SlotRef, item entity.Item) error {
		log.Info().Str("item", item.Type).Str("rarity", item.Rarity).Int("slot", ref.Index).Msg("equipped")
		return nil
	})

	sim := system.NewSimulation(cfg, system.Options{
		Seed:    runSeed,
		Logger:  &log,
		Hooks:   hooks,
		Loadout: loadout,
		Sink:    store,
	})

	commands := make(chan string, 16)
	if *console {
		go func() {
			if err := readConsole(os.Stdin, commands); err != nil {
				log.Warn().Err(err).Msg("console closed")
			}
		}()
	}

	display := cfg.Tuning.Display
	arena := playing.New(sim, cfg, playing.Options{
		Commands: commands,
		Mode:     mode,
		Logger:   &log,
	})
	g := game.New(arena, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(game.FrameDuration(display.Framerate))

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Petal Arena")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game stopped")
	}
}

// loadConfig reads dir, or the embedded configs when dir is empty.
// The returned config is always usable.
func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadOrDefault()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return config.Default(), fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadOrDefault()
}

// loadProfile restores the saved loadout, or nil for a fresh start
func loadProfile(store *persistence.FileStore, log zerolog.Logger) *entity.Loadout {
	profile, err := store.Load()
	switch {
	case errors.Is(err, persistence.ErrNoProfile):
		log.Info().Str("path", store.Path()).Msg("no saved profile")
		return nil
	case err != nil:
		log.Warn().Err(err).Str("path", store.Path()).Msg("ignoring unreadable profile")
		return nil
	}
	log.Info().Str("path", store.Path()).Str("profile", profile.ID.String()).Msg("profile loaded")
	return &profile.Loadout
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
