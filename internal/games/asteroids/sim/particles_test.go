package sim_test

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t  float64
		expected float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{1, 0, 0.25, 0.75},
	}

	for _, tc := range tests {
		if got := sim.Lerp(tc.a, tc.b, tc.t); !approx(got, tc.expected) {
			t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tc.a, tc.b, tc.t, got, tc.expected)
		}
	}
}

func TestEmitterRate(t *testing.T) {
	e := sim.NewEmitter(sim.EmitterParams{Rate: 4, Amount: 2, Lifetime: 1})

	if n := e.Due(0.125); n != 0 {
		t.Errorf("Due(0.125) = %d, expected 0", n)
	}
	if n := e.Due(0.5); n != 4 {
		t.Errorf("Due(0.5) = %d, expected 4", n)
	}

	idle := sim.NewEmitter(sim.EmitterParams{Amount: 5, Lifetime: 1})
	if n := idle.Due(10); n != 0 {
		t.Errorf("on-demand emitter Due() = %d, expected 0", n)
	}
}

func TestParticlesCappedAndExpire(t *testing.T) {
	p := quietParams()
	p.Particles.MaxParticles = 20
	ps := sim.NewParticleSystem(p.Particles, rand.New(rand.NewSource(8)))

	ps.Burst(r2.Point{})
	ps.Burst(r2.Point{})
	if n := len(ps.Particles()); n != 20 {
		t.Fatalf("live particles = %d, expected cap of 20", n)
	}

	ps.Update(p.Particles.Burst.Lifetime/2, p)
	for _, pt := range ps.Particles() {
		if pt.Alpha >= p.Particles.Burst.AlphaStart || pt.Alpha <= p.Particles.Burst.AlphaEnd {
			t.Fatalf("alpha %v not interpolated", pt.Alpha)
		}
		if !p.Bounds().Contains(pt.Pos) {
			t.Fatalf("particle at %v outside bounds", pt.Pos)
		}
	}

	ps.Update(p.Particles.Burst.Lifetime, p)
	if n := len(ps.Particles()); n != 0 {
		t.Errorf("live particles = %d after lifetime, expected 0", n)
	}
}

func TestThrustEmitsExhaust(t *testing.T) {
	p := quietParams()
	w, err := sim.NewWorld(p, sim.WithSeed(4))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	var out sim.TickOutput
	for i := 0; i < 10; i++ {
		out, err = w.Tick(sim.TickInput{Elapsed: 1.0 / 60, Keys: sim.Keys(sim.KeyThrust)})
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}
	if len(out.Particles) == 0 {
		t.Error("thrusting produced no exhaust particles")
	}
}

func TestParticlesDisabled(t *testing.T) {
	p := quietParams()
	p.Particles.MaxParticles = 0
	ps := sim.NewParticleSystem(p.Particles, rand.New(rand.NewSource(1)))

	ps.Burst(r2.Point{})
	ps.Thrust(sim.Ship{}, 1)
	if n := len(ps.Particles()); n != 0 {
		t.Errorf("live particles = %d with particles disabled", n)
	}
}
