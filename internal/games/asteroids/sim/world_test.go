package sim_test

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

func TestNewWorldRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sim.Params)
	}{
		{"zero radius", func(p *sim.Params) { p.AsteroidRadius = 0 }},
		{"negative lifetime", func(p *sim.Params) { p.ProjectileLifetime = -1 }},
		{"zero aspect", func(p *sim.Params) { p.AspectRatio = 0 }},
		{"zero unit scale", func(p *sim.Params) { p.UnitScale = 0 }},
		{"negative ship speed", func(p *sim.Params) { p.MaxShipSpeed = -1 }},
		{"negative cap", func(p *sim.Params) { p.MaxAsteroids = -1 }},
		{"unknown cap policy", func(p *sim.Params) { p.CapPolicy = "explode" }},
		{"ship outside field", func(p *sim.Params) { p.ShipStart = r2.Point{X: 5} }},
		{"negative particle cap", func(p *sim.Params) { p.Particles.MaxParticles = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := sim.DefaultParams()
			tc.mutate(&p)
			if _, err := sim.NewWorld(p); !errors.Is(err, sim.ErrInvalidParams) {
				t.Errorf("NewWorld() error = %v, expected ErrInvalidParams", err)
			}
		})
	}
}

func TestTickErrors(t *testing.T) {
	var empty sim.World
	if _, err := empty.Tick(sim.TickInput{Elapsed: 0.1}); !errors.Is(err, sim.ErrNoShip) {
		t.Errorf("Tick() on empty world error = %v, expected ErrNoShip", err)
	}

	w, err := sim.NewWorld(quietParams(), sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := w.Tick(sim.TickInput{Elapsed: dt}); !errors.Is(err, sim.ErrInvalidInput) {
			t.Errorf("Tick(%v) error = %v, expected ErrInvalidInput", dt, err)
		}
	}
	if _, err := w.Tick(sim.TickInput{Elapsed: 0}); err != nil {
		t.Errorf("Tick(0) error = %v", err)
	}
}

func TestInitialAsteroids(t *testing.T) {
	p := sim.DefaultParams()
	p.InitialAsteroids = 5
	w, err := sim.NewWorld(p, sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	if n := len(w.Asteroids()); n != 5 {
		t.Errorf("asteroids = %d, expected 5", n)
	}
	if w.Stats().Spawned != 5 {
		t.Errorf("Stats().Spawned = %d, expected 5", w.Stats().Spawned)
	}
}

func TestWorldDeterminism(t *testing.T) {
	p := sim.DefaultParams()
	p.SpawnInterval = 0.5
	p.SpawnBurst = 2

	run := func() ([]sim.Asteroid, sim.Ship, sim.Stats) {
		w, err := sim.NewWorld(p, sim.WithSeed(12345))
		if err != nil {
			t.Fatalf("NewWorld() error = %v", err)
		}
		rng := rand.New(rand.NewSource(77))
		for i := 0; i < 600; i++ {
			keys := sim.KeySet(rng.Intn(16))
			if _, err := w.Tick(sim.TickInput{Elapsed: 1.0 / 60, Keys: keys}); err != nil {
				t.Fatalf("Tick() error = %v", err)
			}
		}
		ship, _ := w.Ship()
		return w.Asteroids(), ship, w.Stats()
	}

	a1, s1, st1 := run()
	a2, s2, st2 := run()

	if !reflect.DeepEqual(a1, a2) {
		t.Error("Determinism failed: asteroids differ")
	}
	if s1 != s2 {
		t.Errorf("Determinism failed: ship differs. Run1=%+v, Run2=%+v", s1, s2)
	}
	if st1 != st2 {
		t.Errorf("Determinism failed: stats differ. Run1=%+v, Run2=%+v", st1, st2)
	}
}

func TestBoundsAfterTick(t *testing.T) {
	p := sim.DefaultParams()
	p.SpawnInterval = 0.25
	p.SpawnBurst = 2
	p.MaxAsteroids = 0
	w, err := sim.NewWorld(p, sim.WithSeed(42))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	tight := p.Bounds()
	loose := tight.Expand(sim.WrapLoose.Margin(p.AsteroidRadius))
	band := tight.Expand(sim.WrapBand.Margin(p.AsteroidRadius))
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 2000; i++ {
		keys := sim.KeySet(rng.Intn(16)).With(sim.KeyThrust)
		out, err := w.Tick(sim.TickInput{Elapsed: 1.0 / 30, Keys: keys})
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}

		if !tight.Contains(out.Ship.Pos) {
			t.Fatalf("tick %d: ship at %v outside bounds", out.Tick, out.Ship.Pos)
		}
		for _, pr := range out.Projectiles {
			if !tight.Contains(pr.Pos) {
				t.Fatalf("tick %d: projectile %d at %v outside bounds", out.Tick, pr.ID, pr.Pos)
			}
		}

		for _, a := range out.Asteroids {
			if a.Entered && !loose.Contains(a.Pos) {
				t.Fatalf("tick %d: asteroid %d at %v outside loose bounds", out.Tick, a.ID, a.Pos)
			}
			if !band.Contains(a.Pos) {
				t.Fatalf("tick %d: asteroid %d at %v outside spawn band", out.Tick, a.ID, a.Pos)
			}
		}
	}
}

func onSide(a sim.Asteroid, side sim.Side) bool {
	switch side {
	case sim.SideTop:
		return a.Pos.Y > 0
	case sim.SideBottom:
		return a.Pos.Y < 0
	case sim.SideRight:
		return a.Pos.X > 0
	default:
		return a.Pos.X < 0
	}
}

func TestSpawnedAsteroidsKeepSide(t *testing.T) {
	p := sim.DefaultParams()
	p.InitialAsteroids = 0
	p.SpawnInterval = 1.0 / 30
	p.MaxAsteroids = 0
	w, err := sim.NewWorld(p, sim.WithSeed(7))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	pending := map[uint64]sim.Side{}
	spawned := 0
	for spawned < 1000 {
		out, err := w.Tick(sim.TickInput{Elapsed: 1.0 / 30})
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}

		for _, a := range out.Asteroids {
			side, ok := pending[a.ID]
			if !ok {
				continue
			}
			if !onSide(a, side) {
				t.Fatalf("asteroid %d spawned %v moved to %v on its first tick", a.ID, side, a.Pos)
			}
			delete(pending, a.ID)
		}
		for _, a := range out.Spawned {
			pending[a.ID] = a.Side
		}
		spawned += len(out.Spawned)
	}
}

func TestUnenteredAsteroidWrapsAtBandEdge(t *testing.T) {
	p := quietParams()
	w, err := sim.NewWorld(p, sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	// Outer half of the right band, drifting outward.
	start := r2.Point{X: p.AspectRatio + 0.35, Y: 0}
	w.AddAsteroid(sim.Asteroid{Pos: start, Vel: r2.Point{X: 1}, Side: sim.SideRight})

	out, err := w.Tick(sim.TickInput{Elapsed: 0.01})
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if a := out.Asteroids[0]; a.Pos.X <= p.AspectRatio || a.Entered {
		t.Fatalf("asteroid at %v entered=%v, expected still in the right band", a.Pos, a.Entered)
	}

	// Leaving the band relocates it to the far band, heading inward.
	out, err = w.Tick(sim.TickInput{Elapsed: 1})
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	expected := -(sim.WrapInset*p.AspectRatio + p.AsteroidRadius)
	if a := out.Asteroids[0]; !approx(a.Pos.X, expected) {
		t.Errorf("asteroid x = %v, expected %v", a.Pos.X, expected)
	}
}

func TestCapBlock(t *testing.T) {
	p := sim.DefaultParams()
	p.InitialAsteroids = 5
	p.MaxAsteroids = 3
	p.CapPolicy = sim.CapBlock
	p.SpawnInterval = 1
	p.SpawnBurst = 1

	w, err := sim.NewWorld(p, sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	if n := len(w.Asteroids()); n != 3 {
		t.Fatalf("asteroids = %d, expected cap of 3", n)
	}

	out, err := w.Tick(sim.TickInput{Elapsed: 1})
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if len(out.Spawned) != 0 || len(out.Despawned) != 0 {
		t.Errorf("spawned %d, despawned %d at cap, expected none", len(out.Spawned), len(out.Despawned))
	}
	if len(out.Asteroids) != 3 {
		t.Errorf("asteroids = %d, expected 3", len(out.Asteroids))
	}
}

func TestCapRecycle(t *testing.T) {
	p := sim.DefaultParams()
	p.InitialAsteroids = 3
	p.MaxAsteroids = 3
	p.CapPolicy = sim.CapRecycle
	p.SpawnInterval = 1
	p.SpawnBurst = 1

	w, err := sim.NewWorld(p, sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	oldest := w.Asteroids()[0].ID

	out, err := w.Tick(sim.TickInput{Elapsed: 1})
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if len(out.Despawned) != 1 || out.Despawned[0] != oldest {
		t.Errorf("Despawned = %v, expected [%d]", out.Despawned, oldest)
	}
	if len(out.Spawned) != 1 {
		t.Errorf("Spawned = %d, expected 1", len(out.Spawned))
	}
	if len(out.Asteroids) != 3 {
		t.Errorf("asteroids = %d, expected 3", len(out.Asteroids))
	}
	for _, a := range out.Asteroids {
		if a.ID == oldest {
			t.Errorf("recycled asteroid %d still live", oldest)
		}
	}
}

func TestTickOutputIsCopy(t *testing.T) {
	p := quietParams()
	w, err := sim.NewWorld(p, sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	id := w.AddAsteroid(sim.Asteroid{Pos: r2.Point{X: 1}})

	out, err := w.Tick(sim.TickInput{Elapsed: 0.1})
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	out.Asteroids[0].Pos = r2.Point{X: -1, Y: -1}

	got := w.Asteroids()
	if got[0].ID != id || got[0].Pos == out.Asteroids[0].Pos {
		t.Error("mutating TickOutput changed world state")
	}
}

func TestStatsTrackContacts(t *testing.T) {
	w, err := sim.NewWorld(quietParams(), sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	w.AddAsteroid(sim.Asteroid{Pos: r2.Point{X: 0.1}})

	for i := 0; i < 5; i++ {
		out, err := w.Tick(sim.TickInput{Elapsed: 1.0 / 60, Keys: sim.Keys(sim.KeyFire)})
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		if len(out.Collisions) != 1 {
			t.Fatalf("tick %d: collisions = %d, expected 1", out.Tick, len(out.Collisions))
		}
	}

	st := w.Stats()
	if st.Collisions != 1 {
		t.Errorf("Stats().Collisions = %d, expected one contact onset", st.Collisions)
	}
	if st.Shots != 1 {
		t.Errorf("Stats().Shots = %d, expected 1", st.Shots)
	}
	if st.Ticks != 5 {
		t.Errorf("Stats().Ticks = %d, expected 5", st.Ticks)
	}
}

func TestRetune(t *testing.T) {
	w, err := sim.NewWorld(quietParams(), sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	if err := w.Retune(sim.Tuning{MaxAsteroidSpeed: 9, SpawnInterval: 0.5}); err != nil {
		t.Fatalf("Retune() error = %v", err)
	}
	if w.Params().MaxAsteroidSpeed != 9 || w.Params().SpawnInterval != 0.5 {
		t.Errorf("Params() = %+v, tuning not applied", w.Params())
	}

	out, err := w.Tick(sim.TickInput{Elapsed: 0.5})
	if err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if len(out.Spawned) != 1 {
		t.Errorf("Spawned = %d after retune, expected 1", len(out.Spawned))
	}

	if err := w.Retune(sim.Tuning{MaxAsteroidSpeed: -1}); !errors.Is(err, sim.ErrInvalidParams) {
		t.Errorf("Retune() error = %v, expected ErrInvalidParams", err)
	}
}
