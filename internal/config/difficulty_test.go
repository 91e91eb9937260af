package config

import (
	"math"
	"testing"
)

func timeDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 1000},
		Scaling: ScalingConfig{
			SpeedMultiplier:   1.0,
			IntervalReduction: 0.5,
			MinInterval:       1.0,
		},
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(timeDifficulty())

	tests := []struct {
		ticks    uint64
		expected float64
	}{
		{0, 0},
		{500, 0.5},
		{1000, 1},
		{5000, 1},
	}

	for _, tc := range tests {
		if got := d.Level(tc.ticks); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.ticks, got, tc.expected)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	d := NewDifficultyManager(timeDifficulty())
	d.SetInitialLevel(0.5)

	if got := d.Level(0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := d.Level(500); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level(500) = %v, expected 0.75", got)
	}

	d.SetInitialLevel(3)
	if got := d.Level(0); got != 1 {
		t.Errorf("Level(0) = %v, expected clamp to 1", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := timeDifficulty()
	cfg.InitialLevel = 0.3
	d := NewDifficultyManager(cfg)
	d.SetEnabled(false)

	if d.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
	if got := d.Level(100000); got != 0.3 {
		t.Errorf("Level() = %v, expected fixed 0.3", got)
	}

	cfg.Progression.Type = "none"
	if NewDifficultyManager(cfg).IsEnabled() {
		t.Error("IsEnabled() with progression none should be false")
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(timeDifficulty())

	if got := d.AsteroidSpeed(6, 0); got != 6 {
		t.Errorf("AsteroidSpeed(6, 0) = %v, expected 6", got)
	}
	if got := d.AsteroidSpeed(6, 1000); got != 12 {
		t.Errorf("AsteroidSpeed(6, max) = %v, expected 12", got)
	}

	if got := d.SpawnInterval(4, 0); got != 4 {
		t.Errorf("SpawnInterval(4, 0) = %v, expected 4", got)
	}
	if got := d.SpawnInterval(4, 1000); got != 2 {
		t.Errorf("SpawnInterval(4, max) = %v, expected 2", got)
	}
	if got := d.SpawnInterval(1.5, 1000); got != 1 {
		t.Errorf("SpawnInterval(1.5, max) = %v, expected floor of 1", got)
	}
	if got := d.SpawnInterval(0.5, 1000); got != 0.5 {
		t.Errorf("SpawnInterval(0.5, max) = %v, floor must not raise the base", got)
	}
	if got := d.SpawnInterval(0, 1000); got != 0 {
		t.Errorf("SpawnInterval(0, max) = %v, disabled spawning must stay disabled", got)
	}
}
