// asteroids is a terminal asteroids game built on a deterministic,
// engine-independent simulation core.
//
// Usage:
//
//	asteroids list                  - List available modes
//	asteroids play [mode]           - Play a mode
//	asteroids menu                  - Start menu to pick modes interactively
//	asteroids sim                   - Run the simulation headless
//	asteroids inspect <recording>   - Summarize a tick recording
//	asteroids runs                  - Show run history
//	asteroids serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.arcade/asteroids.db)
//	--log-level <level>   - debug, info, warn or error
//	--config <path>       - Custom asteroids YAML config
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asteroids",
	Short: "Asteroids - fly, thrust and shoot in your terminal",
	Long: `Asteroids is a terminal game on top of a deterministic simulation:
a ship on a wrapping field, asteroids drifting in from the edges and
short-lived projectiles.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  sim      - Run the simulation without a terminal UI
  inspect  - Summarize a tick recording
  runs     - View run history
  serve    - Start SSH server for remote play

Examples:
  asteroids play
  asteroids play asteroids_endless --difficulty hard
  asteroids sim --ticks 3600 --seed 42 --record run.msgpack
  asteroids inspect run.msgpack
  asteroids serve --ssh :2222`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("invalid --difficulty %q (expected easy, normal, hard or fixed)", flagDifficulty)
		}
		asteroids.SetConfigPath(flagConfig)
		asteroids.SetDifficultyPreset(flagDifficulty)
		if flagFPS <= 0 {
			return fmt.Errorf("invalid --fps %d", flagFPS)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/asteroids.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom asteroids config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// interactiveLogger logs to ~/.arcade/asteroids.log, since stderr belongs
// to the terminal UI. The returned closer must be called on exit.
func interactiveLogger() (*log.Logger, io.Closer) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(filepath.Join(dir, "asteroids.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	return newLogger(f, "asteroids"), f
}
