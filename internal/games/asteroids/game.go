// Package asteroids hosts the asteroids simulation inside the terminal
// platform. It maps platform actions to held simulation keys, runs one
// simulation tick per platform tick and draws the field into a Screen.
package asteroids

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

// Mode selects the behaviour at the asteroid cap.
type Mode int

const (
	ModeClassic Mode = iota // Spawning pauses while the field is full
	ModeEndless             // The oldest asteroid makes room for new ones
)

// Registered game IDs.
const (
	IDClassic = "asteroids"
	IDEndless = "asteroids_endless"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives simulation debug events
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to new simulations.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// TickRecorder receives every simulation tick, for example to stream a
// recording to disk.
type TickRecorder interface {
	Record(out sim.TickOutput) error
}

// Game implements registry.Game on top of a sim.World.
type Game struct {
	mode Mode

	runtime    core.RuntimeConfig
	cfg        config.AsteroidsConfig
	params     sim.Params
	difficulty *config.DifficultyManager

	world    *sim.World
	last     sim.TickOutput
	latch    *KeyLatch
	recorder TickRecorder

	paused bool
	err    error
}

// New creates a new asteroids game in classic mode.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates a new asteroids game in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDClassic
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Asteroids (Endless)"
	}
	return "Asteroids"
}

// SetRecorder attaches a recorder that sees every tick. Pass nil to detach.
func (g *Game) SetRecorder(r TickRecorder) {
	g.recorder = r
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.err = nil
	g.last = sim.TickOutput{}

	// Load game config
	cfg, err := config.LoadAsteroids(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultAsteroidsConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyAsteroidsPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.params = ParamsFromConfig(cfg, g.mode)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.latch = NewKeyLatch(LatchWindow(g.tickRate()))
	g.latch.SetRepeatDelay(sim.KeyFire, RepeatDelay(g.tickRate()))

	g.world, g.err = sim.NewWorld(g.params, sim.WithSeed(runtime.Seed), sim.WithLogger(logger))
	if g.err != nil {
		logger.Error("cannot start simulation", "err", g.err)
		return
	}
	g.retune()

	ship, err := g.world.Ship()
	if err != nil {
		g.err = err
		logger.Error("cannot start simulation", "err", err)
		return
	}
	g.last.Ship = ship
	g.last.Asteroids = g.world.Asteroids()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil || g.err != nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		g.latch.Reset()
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	return g.advance(g.latch.Update(in))
}

// StepKeys advances one tick with keys taken as the exact held state,
// bypassing the key latch. Headless runs script input this way.
func (g *Game) StepKeys(keys sim.KeySet) core.StepResult {
	if g.world == nil || g.err != nil || g.paused {
		return core.StepResult{State: g.State()}
	}
	return g.advance(keys)
}

func (g *Game) advance(keys sim.KeySet) core.StepResult {
	out, err := g.world.Tick(sim.TickInput{Elapsed: g.runtime.TickSeconds(), Keys: keys})
	if err != nil {
		g.err = err
		logger.Error("simulation stopped", "err", err)
		return core.StepResult{State: g.State()}
	}
	g.last = out

	if g.recorder != nil {
		if err := g.recorder.Record(out); err != nil {
			logger.Warn("recording stopped", "err", err)
			g.recorder = nil
		}
	}

	if g.tickRate() > 0 && out.Tick%uint64(g.tickRate()) == 0 {
		g.retune()
	}

	return core.StepResult{
		State:      g.State(),
		Collisions: len(out.Collisions),
		Hits:       len(out.Hits),
	}
}

// retune applies the current difficulty level to the world.
func (g *Game) retune() {
	ticks := g.world.Stats().Ticks
	t := sim.Tuning{
		MaxAsteroidSpeed: g.difficulty.AsteroidSpeed(g.params.MaxAsteroidSpeed, ticks),
		SpawnInterval:    g.difficulty.SpawnInterval(g.params.SpawnInterval, ticks),
	}
	if err := g.world.Retune(t); err != nil {
		logger.Warn("difficulty not applied", "err", err)
	}
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate <= 0 {
		return 60
	}
	return g.runtime.TickRate
}

// Last returns the most recent tick output.
func (g *Game) Last() sim.TickOutput {
	return g.last
}

// Params returns the simulation parameters of the current run.
func (g *Game) Params() sim.Params {
	return g.params
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused: g.paused,
		Err:    g.err,
	}
	if g.world == nil {
		return st
	}

	stats := g.world.Stats()
	st.Tick = stats.Ticks
	st.Elapsed = stats.Elapsed
	st.Stats = core.RunStats{
		Asteroids:  len(g.last.Asteroids),
		Spawned:    stats.Spawned,
		Shots:      stats.Shots,
		Collisions: stats.Collisions,
		Hits:       stats.Hits,
	}
	return st
}

// Register the game modes with the registry
func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}
