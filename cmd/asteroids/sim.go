package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var (
	flagSimTicks     int
	flagSimRecord    string
	flagSimFireEvery int
	flagSimThrust    bool
	flagSimTurn      string
	flagSimSave      bool
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run the simulation without a terminal UI",
	Long: `Run a mode headless for a fixed number of ticks with scripted input,
then print the run counters. With --record every tick is written to a
msgpack file that 'asteroids inspect' or an external renderer can read.

Examples:
  asteroids sim --ticks 3600 --seed 42
  asteroids sim asteroids_endless --ticks 36000 --fire-every 20 --thrust
  asteroids sim --seed 7 --record run.msgpack --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to simulate")
	simCmd.Flags().StringVar(&flagSimRecord, "record", "", "Record every tick to a msgpack file")
	simCmd.Flags().IntVar(&flagSimFireEvery, "fire-every", 0, "Press fire every N ticks (0 = never, otherwise at least 2)")
	simCmd.Flags().BoolVar(&flagSimThrust, "thrust", false, "Hold thrust for the whole run")
	simCmd.Flags().StringVar(&flagSimTurn, "turn", "", "Hold a turn key: left or right")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the run in the history database")
}

func runSim(cmd *cobra.Command, args []string) {
	if err := simulate(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// simulate runs the headless session. Deferred cleanup, including flushing
// a recording, runs before any error reaches the caller.
func simulate(args []string) error {
	gameID := asteroids.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q", gameID)
	}

	var keys sim.KeySet
	switch flagSimTurn {
	case "":
	case "left":
		keys = keys.With(sim.KeyRotateLeft)
	case "right":
		keys = keys.With(sim.KeyRotateRight)
	default:
		return fmt.Errorf("invalid --turn %q (expected left or right)", flagSimTurn)
	}
	if flagSimThrust {
		keys = keys.With(sim.KeyThrust)
	}
	// Fire is edge triggered, so it needs at least one released tick
	// between presses.
	if flagSimFireEvery == 1 || flagSimFireEvery < 0 {
		return fmt.Errorf("invalid --fire-every %d (expected 0 or at least 2)", flagSimFireEvery)
	}

	logger := newLogger(os.Stderr, "sim")
	asteroids.SetLogger(logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = seed

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	g, ok := game.(*asteroids.Game)
	if !ok {
		return fmt.Errorf("mode %q cannot run headless", gameID)
	}

	if flagSimRecord != "" {
		w, err := openRecording(flagSimRecord, gameID, seed)
		if err != nil {
			return err
		}
		defer func() {
			if err := w.Close(); err != nil {
				logger.Error("recording not flushed", "err", err)
				return
			}
			logger.Info("recording written", "path", flagSimRecord, "frames", w.Frames())
		}()
		g.SetRecorder(w)
	}

	g.Reset(cfg)
	logger.Info("simulation started", "mode", gameID, "seed", seed, "ticks", flagSimTicks)

	start := time.Now()
	st := g.State()
	for i := 0; i < flagSimTicks; i++ {
		in := keys
		if flagSimFireEvery > 0 && i%flagSimFireEvery == 0 {
			in = in.With(sim.KeyFire)
		}

		st = g.StepKeys(in).State
		if st.Err != nil {
			return st.Err
		}
	}
	wall := time.Since(start)

	fmt.Printf("Mode:        %s\n", g.Title())
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Ticks:       %d (%.1fs simulated, %s wall)\n", st.Tick, st.Elapsed, wall.Round(time.Millisecond))
	fmt.Printf("Asteroids:   %d live, %d spawned\n", st.Stats.Asteroids, st.Stats.Spawned)
	fmt.Printf("Shots:       %d\n", st.Stats.Shots)
	fmt.Printf("Hits:        %d\n", st.Stats.Hits)
	fmt.Printf("Contacts:    %d\n", st.Stats.Collisions)

	if flagSimSave {
		return saveHeadlessRun(gameID, seed, st)
	}
	return nil
}

func saveHeadlessRun(gameID string, seed int64, st core.GameState) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer store.Close()

	id, err := store.SaveRun(tui.RunFromState(gameID, seed, st))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	fmt.Printf("Saved run:   %s\n", id)
	return nil
}
