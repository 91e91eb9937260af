package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/registry"
	"github.com/vovakirdan/tui-asteroids/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsStats bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [mode]",
	Short: "Show run history",
	Long: `Display the most recent stored runs, optionally for one mode.

Examples:
  asteroids runs
  asteroids runs asteroids_endless --limit 50
  asteroids runs --stats
  asteroids runs asteroids --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-mode totals instead of runs")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all runs for the mode")
}

func runRuns(cmd *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
			fmt.Fprintln(os.Stderr, "Run 'asteroids list' to see available modes.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if mode == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a mode")
			return
		}
		if err := store.DeleteRuns(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared run history for %s\n", mode)

	case flagRunsStats:
		printStats(store, mode)

	default:
		printRuns(store, mode)
	}
}

func printRuns(store *storage.Store, mode string) {
	runs, err := store.ListRuns(mode, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("%-36s  %-18s  %-12s  %8s  %5s  %5s  %8s  %s\n",
		"ID", "Mode", "Date", "Time", "Shots", "Hits", "Contacts", "Seed")
	for _, r := range runs {
		fmt.Printf("%-36s  %-18s  %-12s  %7.1fs  %5d  %5d  %8d  %d\n",
			r.ID, r.Mode, r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Elapsed, r.Shots, r.Hits, r.Collisions, r.Seed)
	}
}

func printStats(store *storage.Store, mode string) {
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		if mode == "" || m == mode {
			modes = append(modes, m)
		}
	}
	sort.Strings(modes)

	if len(modes) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	for _, m := range modes {
		s := stats[m]
		fmt.Printf("%s\n", m)
		fmt.Printf("  Runs:        %d\n", s.Runs)
		fmt.Printf("  Flight time: %.1fs (longest %.1fs)\n", s.TotalElapsed, s.LongestRun)
		fmt.Printf("  Accuracy:    %.0f%% (%d/%d)\n", s.Accuracy()*100, s.Hits, s.Shots)
		fmt.Printf("  Contacts:    %d\n", s.Collisions)
		fmt.Printf("  Last played: %s\n", s.LastPlayed.Local().Format("Jan 02 15:04"))
	}
}
