// Command soak runs headless arena simulations in parallel and reports how far each got.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/younwookim/petalarena/internal/application/system"
	"github.com/younwookim/petalarena/internal/domain/entity"
	"github.com/younwookim/petalarena/internal/infrastructure/config"
	"github.com/younwookim/petalarena/internal/infrastructure/logging"
)

// Options configures a soak
type Options struct {
	Runs     int
	Frames   int
	Seed     int64
	Parallel int
	DT       time.Duration
}

// Result summarizes one headless run
type Result struct {
	Run    int
	Seed   int64
	RunID  string
	Frames int
	Wave   int
	Deaths int
	Kills  int
}

func main() {
	runs := flag.Int("runs", 4, "Number of simulations")
	frames := flag.Int("frames", 60*60*5, "Frames per simulation")
	seed := flag.Int64("seed", 1, "Seed of the first run; run i uses seed+i")
	parallel := flag.Int("parallel", runtime.NumCPU(), "Simulations running at once")
	configDir := flag.String("config", "cmd/game/configs", "Config directory")
	level := flag.String("log", "info", "Log level")
	flag.Parse()

	log := logging.New(os.Stderr, *level, "soak")

	cfg, err := config.NewLoader(*configDir).LoadOrDefault()
	if err != nil {
		log.Warn().Err(err).Msg("using built-in defaults for some config files")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := Soak(ctx, cfg, Options{
		Runs:     *runs,
		Frames:   *frames,
		Seed:     *seed,
		Parallel: *parallel,
		DT:       time.Second / 60,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("soak failed")
	}

	log.Info().Int("runs", len(results)).Dur("elapsed", time.Since(start)).Msg("soak finished")
	if err := writeReport(os.Stdout, results); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}
}

// Soak runs opts.Runs independent simulations, at most opts.Parallel at a time.
// Simulations share only the read-only config.
func Soak(ctx context.Context, cfg *config.GameConfig, opts Options, log zerolog.Logger) ([]Result, error) {
	if opts.Runs <= 0 {
		return nil, nil
	}
	if opts.DT <= 0 {
		opts.DT = time.Second / 60
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}

	results := make([]Result, opts.Runs)
	for i := range opts.Runs {
		g.Go(func() error {
			r, err := runOne(ctx, cfg, i, opts.Seed+int64(i), opts, log)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// starterLoadout gives soak runs something to fight with
func starterLoadout() *entity.Loadout {
	var l entity.Loadout
	l.Equipped[0] = &entity.Item{Type: "Light", Rarity: "Common", Stack: 1}
	l.Equipped[1] = &entity.Item{Type: "Stinger", Rarity: "Common", Stack: 1}
	l.Equipped[2] = &entity.Item{Type: "Rose", Rarity: "Common", Stack: 3}
	l.Equipped[3] = &entity.Item{Type: "Pollen", Rarity: "Common", Stack: 1}
	l.Swap[0] = &entity.Item{Type: "Missile", Rarity: "Common", Stack: 1}
	return &l
}

func runOne(ctx context.Context, cfg *config.GameConfig, run int, seed int64, opts Options, log zerolog.Logger) (Result, error) {
	runLog := log.With().Int("runIndex", run).Int64("seed", seed).Logger()
	sim := system.NewSimulation(cfg, system.Options{
		Seed:    seed,
		Logger:  &runLog,
		Loadout: starterLoadout(),
	})

	res := Result{Run: run, Seed: seed, RunID: sim.RunID.String()}
	sim.OnPlayerDeath = func(int) { res.Deaths++ }
	sim.Start()

	sc := newScript(seed)
	for f := 0; f < opts.Frames; f++ {
		if f%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		if sim.World.Dead {
			if err := sim.Respawn(); err != nil {
				return res, err
			}
		}
		sim.Tick(sc.next(sim.World), opts.DT)
		res.Frames++
	}

	snap := sim.Snapshot()
	res.Wave = snap.Wave
	for _, n := range snap.Kills {
		res.Kills += n
	}
	runLog.Info().Int("wave", res.Wave).Int("deaths", res.Deaths).Int("kills", res.Kills).Msg("run finished")
	return res, nil
}

func writeReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSEED\tFRAMES\tWAVE\tDEATHS\tKILLS\tRUN ID")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%s\n", r.Run, r.Seed, r.Frames, r.Wave, r.Deaths, r.Kills, r.RunID)
	}
	return tw.Flush()
}
