package asteroids

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/vovakirdan/tui-asteroids/internal/config"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// ParamsFromConfig converts the YAML configuration into simulation
// parameters. The mode decides the cap policy.
func ParamsFromConfig(cfg config.AsteroidsConfig, mode Mode) sim.Params {
	p := sim.Params{
		AspectRatio: cfg.Field.AspectRatio,
		UnitScale:   cfg.Field.UnitScale,

		MaxShipSpeed:   cfg.Ship.MaxSpeed,
		ThrustImpulse:  cfg.Ship.ThrustImpulse,
		ShipStart:      r2.Point{},
		ShipStartAngle: degToRad(cfg.Ship.StartAngleDeg),

		AsteroidRadius:   cfg.Asteroids.Radius,
		MaxAsteroidSpeed: cfg.Asteroids.MaxSpeed,

		ProjectileLifetime: cfg.Projectiles.Lifetime,
		ProjectileSpeed:    cfg.Projectiles.Speed,
		ProjectileFade:     cfg.Projectiles.Fade,

		InitialAsteroids: cfg.Spawner.Initial,
		SpawnInterval:    cfg.Spawner.Interval,
		SpawnBurst:       cfg.Spawner.Burst,
		MaxAsteroids:     cfg.Spawner.MaxAsteroids,
		CapPolicy:        sim.CapPolicy(cfg.Spawner.CapPolicy),

		Particles: sim.ParticleParams{
			MaxParticles: cfg.Particles.Max,
			Exhaust:      emitterParams(cfg.Particles.Exhaust),
			Burst:        emitterParams(cfg.Particles.Burst),
		},
	}

	switch mode {
	case ModeEndless:
		p.CapPolicy = sim.CapRecycle
	default:
		if p.CapPolicy == "" {
			p.CapPolicy = sim.CapBlock
		}
	}
	return p
}

func emitterParams(e config.EmitterConfig) sim.EmitterParams {
	return sim.EmitterParams{
		Rate:             e.Rate,
		Amount:           e.Amount,
		PositionVariance: e.PositionVariance,
		Spread:           degToRad(e.SpreadDeg),
		Lifetime:         e.Lifetime,
		SizeStart:        e.Size.Start,
		SizeEnd:          e.Size.End,
		AlphaStart:       e.Alpha.Start,
		AlphaEnd:         e.Alpha.End,
		SpeedStart:       e.Speed.Start,
		SpeedEnd:         e.Speed.End,
	}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
