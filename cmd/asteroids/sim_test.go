package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-asteroids/internal/snapshot"
)

// withSimFlags sets the sim flags for one test and restores them after.
func withSimFlags(t *testing.T, ticks, fireEvery int, record string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	oldTicks, oldFire, oldRecord, oldSeed := flagSimTicks, flagSimFireEvery, flagSimRecord, flagSeed
	oldLevel := flagLogLevel
	t.Cleanup(func() {
		flagSimTicks, flagSimFireEvery, flagSimRecord, flagSeed = oldTicks, oldFire, oldRecord, oldSeed
		flagLogLevel = oldLevel
	})

	flagSimTicks = ticks
	flagSimFireEvery = fireEvery
	flagSimRecord = record
	flagSeed = 11
	flagLogLevel = "error"
}

func TestSimulateFlushesRecording(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.msgpack")
	withSimFlags(t, 120, 10, path)

	if err := simulate(nil); err != nil {
		t.Fatalf("simulate() error = %v", err)
	}

	s, err := snapshot.SummarizeFile(path)
	if err != nil {
		t.Fatalf("SummarizeFile() error = %v", err)
	}
	if s.Frames != 120 {
		t.Errorf("Frames = %d, expected 120", s.Frames)
	}
	if s.Header.Seed != 11 {
		t.Errorf("Header.Seed = %d, expected 11", s.Header.Seed)
	}
	// One shot per scripted press, below the terminal repeat delay.
	if s.Shots != 12 {
		t.Errorf("Shots = %d, expected 12", s.Shots)
	}
}

func TestSimulateRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		fire int
	}{
		{"unknown mode", []string{"pong"}, 0},
		{"fire every tick", nil, 1},
		{"negative fire interval", nil, -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			withSimFlags(t, 10, tc.fire, "")
			if err := simulate(tc.args); err == nil {
				t.Error("simulate() should fail")
			}
		})
	}
}
