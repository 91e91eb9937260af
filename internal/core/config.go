package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the duration of one tick in seconds.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// RunStats are the counters a game exposes about the current run.
type RunStats struct {
	Asteroids  int // Live asteroids
	Spawned    int
	Shots      int
	Collisions int // Ship contact onsets
	Hits       int // Projectile overlaps
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Tick    uint64   // Simulation ticks since reset
	Elapsed float64  // Simulated seconds since reset
	Paused  bool     // Whether the game is paused
	Stats   RunStats // Counters for the HUD and run history
	Err     error    // Set if the simulation stopped on an error
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and the events of this tick.
type StepResult struct {
	State      GameState
	Collisions int // Ship overlaps reported this tick
	Hits       int // Projectile overlaps reported this tick
}
