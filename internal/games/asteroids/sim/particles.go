package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// EmitterParams configures one kind of particle effect.
type EmitterParams struct {
	Rate             float64 // Bursts per second while active, 0 for on-demand only
	Amount           int     // Particles per burst
	PositionVariance float64 // Max offset from the origin on each axis
	Spread           float64 // Max deviation from the emit direction in radians
	Lifetime         float64 // Seconds a particle lives
	SizeStart        float64
	SizeEnd          float64
	AlphaStart       float64
	AlphaEnd         float64
	SpeedStart       float64
	SpeedEnd         float64
}

// ParticleParams configures the particle system.
type ParticleParams struct {
	MaxParticles int // 0 disables particles
	Exhaust      EmitterParams
	Burst        EmitterParams
}

// DefaultParticleParams returns the stock exhaust and impact effects.
func DefaultParticleParams() ParticleParams {
	return ParticleParams{
		MaxParticles: 256,
		Exhaust: EmitterParams{
			Rate:             30,
			Amount:           2,
			PositionVariance: 0.02,
			Spread:           0.4,
			Lifetime:         0.4,
			SizeStart:        0.05,
			SizeEnd:          0.01,
			AlphaStart:       1,
			AlphaEnd:         0,
			SpeedStart:       4,
			SpeedEnd:         0,
		},
		Burst: EmitterParams{
			Amount:           12,
			PositionVariance: 0.05,
			Spread:           math.Pi,
			Lifetime:         0.8,
			SizeStart:        0.08,
			SizeEnd:          0.02,
			AlphaStart:       1,
			AlphaEnd:         0,
			SpeedStart:       8,
			SpeedEnd:         1,
		},
	}
}

func (p ParticleParams) validate() error {
	if p.MaxParticles < 0 {
		return fmt.Errorf("%w: max particles must not be negative, got %d", ErrInvalidParams, p.MaxParticles)
	}
	if err := p.Exhaust.validate("exhaust"); err != nil {
		return err
	}
	return p.Burst.validate("burst")
}

func (e EmitterParams) validate(name string) error {
	switch {
	case e.Rate < 0:
		return fmt.Errorf("%w: %s rate must not be negative, got %v", ErrInvalidParams, name, e.Rate)
	case e.Amount < 0:
		return fmt.Errorf("%w: %s amount must not be negative, got %d", ErrInvalidParams, name, e.Amount)
	case e.Amount > 0 && e.Lifetime <= 0:
		return fmt.Errorf("%w: %s lifetime must be positive, got %v", ErrInvalidParams, name, e.Lifetime)
	}
	return nil
}

// Particle is a short-lived cosmetic body. Size, alpha and speed are
// interpolated from start to end over its lifetime.
type Particle struct {
	Pos   r2.Point
	Dir   r2.Point
	Size  float64
	Alpha float64
	Speed float64
	Age   float64
	Life  float64

	emitter EmitterParams
}

// Position implements Body.
func (p Particle) Position() r2.Point { return p.Pos }

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Emitter fires bursts at a fixed rate while active.
type Emitter struct {
	params EmitterParams
	timer  float64
}

// NewEmitter creates an emitter.
func NewEmitter(p EmitterParams) *Emitter {
	return &Emitter{params: p}
}

// Due advances the emitter by dt and returns how many particles to emit.
func (e *Emitter) Due(dt float64) int {
	if e.params.Rate <= 0 {
		return 0
	}
	interval := 1 / e.params.Rate
	e.timer += dt
	n := 0
	for e.timer >= interval {
		e.timer -= interval
		n += e.params.Amount
	}
	return n
}

// ParticleSystem owns all live particles.
type ParticleSystem struct {
	params    ParticleParams
	rng       *rand.Rand
	exhaust   *Emitter
	particles []Particle
}

// NewParticleSystem creates an empty particle system.
func NewParticleSystem(p ParticleParams, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		params:  p,
		rng:     rng,
		exhaust: NewEmitter(p.Exhaust),
	}
}

// Thrust emits exhaust behind the ship according to the exhaust rate.
func (ps *ParticleSystem) Thrust(ship Ship, dt float64) {
	n := ps.exhaust.Due(dt)
	if n == 0 {
		return
	}
	ps.emit(ship.Pos, ship.Angle+math.Pi, ps.params.Exhaust, n)
}

// Burst emits a one-off impact effect at origin.
func (ps *ParticleSystem) Burst(origin r2.Point) {
	ps.emit(origin, ps.rng.Float64()*2*math.Pi, ps.params.Burst, ps.params.Burst.Amount)
}

func (ps *ParticleSystem) emit(origin r2.Point, angle float64, ep EmitterParams, n int) {
	for i := 0; i < n && len(ps.particles) < ps.params.MaxParticles; i++ {
		offset := r2.Point{
			X: (ps.rng.Float64()*2 - 1) * ep.PositionVariance,
			Y: (ps.rng.Float64()*2 - 1) * ep.PositionVariance,
		}
		dir := angle + (ps.rng.Float64()*2-1)*ep.Spread
		ps.particles = append(ps.particles, Particle{
			Pos:     origin.Add(offset),
			Dir:     Heading(dir),
			Size:    ep.SizeStart,
			Alpha:   ep.AlphaStart,
			Speed:   ep.SpeedStart,
			Life:    ep.Lifetime,
			emitter: ep,
		})
	}
}

// Update ages every particle, interpolates its appearance, moves it and
// drops those past their lifetime.
func (ps *ParticleSystem) Update(dt float64, p Params) {
	kept := ps.particles[:0]
	for _, pt := range ps.particles {
		pt.Age += dt
		if pt.Age >= pt.Life {
			continue
		}
		t := pt.Age / pt.Life
		pt.Size = Lerp(pt.emitter.SizeStart, pt.emitter.SizeEnd, t)
		pt.Alpha = Lerp(pt.emitter.AlphaStart, pt.emitter.AlphaEnd, t)
		pt.Speed = Lerp(pt.emitter.SpeedStart, pt.emitter.SpeedEnd, t)
		pt.Pos = Integrate(pt.Pos, pt.Dir.Mul(pt.Speed), dt, p.UnitScale)
		pt.Pos = WrapTight.Apply(pt.Pos, p)
		kept = append(kept, pt)
	}
	ps.particles = kept
}

// Particles returns a copy of the live particles.
func (ps *ParticleSystem) Particles() []Particle {
	out := make([]Particle, len(ps.particles))
	copy(out, ps.particles)
	return out
}
