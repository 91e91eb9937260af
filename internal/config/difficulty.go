package config

import "math"

// DifficultyManager calculates dynamic game parameters based on elapsed ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on ticks.
func (d *DifficultyManager) Level(ticks uint64) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	progress := clampF(float64(ticks)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// AsteroidSpeed returns the per-axis asteroid speed bound at this point in the run.
func (d *DifficultyManager) AsteroidSpeed(baseSpeed float64, ticks uint64) float64 {
	level := d.Level(ticks)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval returns the seconds between spawn bursts at this point in the run.
// A disabled (zero) base interval stays disabled.
func (d *DifficultyManager) SpawnInterval(baseInterval float64, ticks uint64) float64 {
	if baseInterval <= 0 {
		return 0
	}
	level := d.Level(ticks)
	result := baseInterval * (1.0 - level*clampF(d.cfg.Scaling.IntervalReduction, 0.0, 1.0))
	floor := math.Min(d.cfg.Scaling.MinInterval, baseInterval)
	if result < floor {
		result = floor
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
