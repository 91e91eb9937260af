package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
	"github.com/vovakirdan/tui-asteroids/internal/platform/tui"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/snapshot"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var flagPlayRecord string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: asteroids).

Controls:
  A/Left, D/Right - Rotate
  W/Up            - Thrust
  Space/K         - Fire (one shot per press)
  P               - Pause
  Esc/B           - Back (while paused)
  R               - Restart
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  asteroids play
  asteroids play asteroids_endless
  asteroids play --difficulty hard --seed 42
  asteroids play --config ./my-asteroids.yaml --record run.msgpack`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayRecord, "record", "", "Record every tick to a msgpack file")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := asteroids.IDClassic
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'asteroids list' to see available modes.")
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger, closer := interactiveLogger()
	defer closer.Close()
	asteroids.SetLogger(logger)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if flagPlayRecord != "" {
		// The recording header needs the actual seed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		w, recErr := openRecording(flagPlayRecord, gameID, cfg.Seed)
		if recErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", recErr)
			os.Exit(1)
		}
		defer w.Close()
		if g, ok := game.(*asteroids.Game); ok {
			g.SetRecorder(w)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openRecording starts a recording with the header for the configured run.
func openRecording(path, mode string, seed int64) (*snapshot.Writer, error) {
	cfg, err := config.LoadAsteroids(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		config.ApplyAsteroidsPreset(&cfg, preset)
	}
	m := asteroids.ModeClassic
	if mode == asteroids.IDEndless {
		m = asteroids.ModeEndless
	}
	return snapshot.Create(path, snapshot.HeaderFor(mode, seed, asteroids.ParamsFromConfig(cfg, m)))
}
