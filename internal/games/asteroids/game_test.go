package asteroids

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
	"github.com/vovakirdan/tui-asteroids/internal/registry"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// isolate keeps user config directories out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")
}

func TestGameDeterminism(t *testing.T) {
	isolate(t)

	// Thrust and turn in a fixed pattern, fire every 20 ticks
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%3 == 0 {
			inputSequence[i].Set(core.ActionThrust)
		}
		if i%50 < 10 {
			inputSequence[i].Set(core.ActionRotateLeft)
		}
		if i%20 == 0 {
			inputSequence[i].Set(core.ActionFire)
		}
	}

	run := func() (core.GameState, sim.TickOutput) {
		g := New()
		g.Reset(testConfig(12345))
		var st core.GameState
		for _, in := range inputSequence {
			st = g.Step(in).State
		}
		return st, g.Last()
	}

	st1, out1 := run()
	st2, out2 := run()

	if st1 != st2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", st1, st2)
	}
	if out1.Ship != out2.Ship {
		t.Errorf("Determinism failed: ships differ. Run1=%+v, Run2=%+v", out1.Ship, out2.Ship)
	}
	if len(out1.Asteroids) != len(out2.Asteroids) {
		t.Errorf("Determinism failed: asteroid counts differ. Run1=%d, Run2=%d", len(out1.Asteroids), len(out2.Asteroids))
	}
	if st1.Stats.Shots == 0 {
		t.Error("expected some shots to be fired")
	}
}

func TestGameReset(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(42))

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionThrust)
		g.Step(in)
	}
	if g.State().Tick != 50 {
		t.Fatalf("Tick = %d, expected 50", g.State().Tick)
	}

	g.Reset(testConfig(42))

	st := g.State()
	if st.Tick != 0 {
		t.Errorf("after Reset, Tick = %d, expected 0", st.Tick)
	}
	if st.Paused {
		t.Error("after Reset, game should not be paused")
	}
	if g.Last().Ship.Pos != (r2.Point{}) {
		t.Errorf("after Reset, ship at %v, expected origin", g.Last().Ship.Pos)
	}
	if st.Stats.Spawned != config.DefaultAsteroidsConfig().Spawner.Initial {
		t.Errorf("after Reset, Spawned = %d, expected initial asteroids", st.Stats.Spawned)
	}
}

func TestGamePause(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(1))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State().Tick != 0 {
		t.Errorf("Tick advanced to %d while paused", g.State().Tick)
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("game should be resumed")
	}
}

func TestGameIDs(t *testing.T) {
	if New().ID() != IDClassic || NewEndless().ID() != IDEndless {
		t.Error("unexpected game IDs")
	}
	for _, id := range []string{IDClassic, IDEndless} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
}

func TestEndlessRecycles(t *testing.T) {
	isolate(t)

	g := NewEndless()
	g.Reset(testConfig(1))

	if g.Params().CapPolicy != sim.CapRecycle {
		t.Errorf("endless CapPolicy = %q, expected recycle", g.Params().CapPolicy)
	}
	if New().params.CapPolicy == sim.CapRecycle {
		t.Error("classic mode should not start with recycle policy")
	}
}

func TestInvalidConfigSurfacesError(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("asteroids:\n  radius: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := New()
	g.Reset(testConfig(1))

	st := g.Step(core.NewInputFrame()).State
	if !errors.Is(st.Err, sim.ErrInvalidParams) {
		t.Fatalf("State().Err = %v, expected ErrInvalidParams", st.Err)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "SIMULATION ERROR") {
		t.Error("render should show the simulation error")
	}
}

type memRecorder struct {
	ticks []uint64
}

func (m *memRecorder) Record(out sim.TickOutput) error {
	m.ticks = append(m.ticks, out.Tick)
	return nil
}

func TestRecorderSeesEveryTick(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(1))
	rec := &memRecorder{}
	g.SetRecorder(rec)

	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if len(rec.ticks) != 5 || rec.ticks[4] != 5 {
		t.Errorf("recorded ticks = %v, expected 1..5", rec.ticks)
	}
}

func TestDifficultyRetunes(t *testing.T) {
	isolate(t)
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	g := New()
	g.Reset(testConfig(1))

	base := g.Params().MaxAsteroidSpeed
	if got := g.world.Params().MaxAsteroidSpeed; got <= base {
		t.Errorf("hard preset asteroid speed = %v, expected above base %v", got, base)
	}
}

func TestRenderShowsShipAndHUD(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(1))
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	v := NewViewport(g.params.AspectRatio, 80, 24)
	x, y := v.Cell(g.Last().Ship.Pos)
	if got := screen.Get(x, y); got != ShipGlyph(g.Last().Ship.Angle) {
		t.Errorf("ship cell = %q, expected %q", got, ShipGlyph(g.Last().Ship.Angle))
	}
	if !strings.Contains(screen.Row(0), "Asteroids") {
		t.Errorf("HUD row = %q, expected title", screen.Row(0))
	}
}

func TestViewportCorners(t *testing.T) {
	v := Viewport{Aspect: 2, Left: 0, Top: 2, Width: 41, Height: 21}

	tests := []struct {
		p    r2.Point
		x, y int
	}{
		{r2.Point{X: -2, Y: 1}, 0, 2},
		{r2.Point{X: 2, Y: -1}, 40, 22},
		{r2.Point{X: 0, Y: 0}, 20, 12},
	}

	for _, tc := range tests {
		x, y := v.Cell(tc.p)
		if x != tc.x || y != tc.y {
			t.Errorf("Cell(%v) = (%d, %d), expected (%d, %d)", tc.p, x, y, tc.x, tc.y)
		}
	}
}

func TestShipGlyph(t *testing.T) {
	tests := []struct {
		angle    float64
		expected rune
	}{
		{0, '→'},
		{math.Pi / 2, '↑'},
		{math.Pi, '←'},
		{-math.Pi / 2, '↓'},
		{2 * math.Pi, '→'},
		{-math.Pi / 4, '↘'},
	}

	for _, tc := range tests {
		if got := ShipGlyph(tc.angle); got != tc.expected {
			t.Errorf("ShipGlyph(%v) = %q, expected %q", tc.angle, got, tc.expected)
		}
	}
}
