package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

// DefaultAsteroidsConfig returns the default asteroids configuration.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		Field: FieldConfig{
			AspectRatio: 16.0 / 9.0,
			UnitScale:   0.1,
		},
		Ship: ShipConfig{
			MaxSpeed:      15,
			ThrustImpulse: 0.5,
			StartAngleDeg: 90,
		},
		Asteroids: AsteroidRules{
			Radius:   0.4,
			MaxSpeed: 6,
		},
		Projectiles: ProjectileConfig{
			Lifetime: 3,
			Speed:    30,
			Fade:     0.2,
		},
		Spawner: SpawnerConfig{
			Initial:      3,
			Interval:     4,
			Burst:        1,
			MaxAsteroids: 24,
			CapPolicy:    "block",
		},
		Particles: ParticlesConfig{
			Max: 256,
			Exhaust: EmitterConfig{
				Rate:             30,
				Amount:           2,
				PositionVariance: 0.02,
				SpreadDeg:        23,
				Lifetime:         0.4,
				Size:             Range{Start: 0.05, End: 0.01},
				Alpha:            Range{Start: 1, End: 0},
				Speed:            Range{Start: 4, End: 0},
			},
			Burst: EmitterConfig{
				Amount:           12,
				PositionVariance: 0.05,
				SpreadDeg:        180,
				Lifetime:         0.8,
				Size:             Range{Start: 0.08, End: 0.02},
				Alpha:            Range{Start: 1, End: 0},
				Speed:            Range{Start: 8, End: 1},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 18000, // 5 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.75,
				MinInterval:       0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "asteroids", "asteroids_endless":
		return defaultAsteroidsYAML
	default:
		return nil
	}
}
