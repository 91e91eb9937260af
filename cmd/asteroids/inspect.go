package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-asteroids/internal/snapshot"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <recording>",
	Short: "Summarize a tick recording",
	Long: `Decode a msgpack recording written by 'sim --record' or
'play --record' and print what happened in it.

Examples:
  asteroids inspect run.msgpack`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) {
	s, err := snapshot.SummarizeFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	h := s.Header
	fmt.Printf("Recording:   %s (format v%d)\n", args[0], h.Version)
	fmt.Printf("Mode:        %s\n", h.Mode)
	fmt.Printf("Seed:        %d\n", h.Seed)
	fmt.Printf("Field:       %.3f x 1.000 (unit scale %.2f, radius %.2f)\n", h.AspectRatio, h.UnitScale, h.AsteroidRadius)

	if s.Frames == 0 {
		fmt.Println("Frames:      0")
		return
	}

	fmt.Printf("Frames:      %d (ticks %d..%d, %.1fs)\n", s.Frames, s.FirstTick, s.LastTick, s.Elapsed)
	fmt.Printf("Asteroids:   %d spawned, %d recycled, at most %d live\n", s.Spawned, s.Despawned, s.MaxAsteroids)
	fmt.Printf("Shots:       %d (%d expired)\n", s.Shots, s.Retired)
	fmt.Printf("Hits:        %d\n", s.Hits)
	fmt.Printf("Contact:     %d ticks\n", s.Contacts)
}
