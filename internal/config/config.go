// Package config provides YAML-based game configuration loading and
// difficulty management for the asteroids platform.
package config

// AsteroidsConfig contains all configuration for the asteroids game.
type AsteroidsConfig struct {
	Field       FieldConfig      `yaml:"field"`
	Ship        ShipConfig       `yaml:"ship"`
	Asteroids   AsteroidRules    `yaml:"asteroids"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Spawner     SpawnerConfig    `yaml:"spawner"`
	Particles   ParticlesConfig  `yaml:"particles"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield geometry in world units.
type FieldConfig struct {
	AspectRatio float64 `yaml:"aspect_ratio"` // Horizontal half-extent; vertical is always 1
	UnitScale   float64 `yaml:"unit_scale"`   // Applied to every velocity integration
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	MaxSpeed      float64 `yaml:"max_speed"`
	ThrustImpulse float64 `yaml:"thrust_impulse"`
	StartAngleDeg float64 `yaml:"start_angle_deg"` // 0 points right, 90 points up
}

// AsteroidRules defines asteroid size and motion.
type AsteroidRules struct {
	Radius   float64 `yaml:"radius"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// ProjectileConfig defines projectile motion and lifetime.
type ProjectileConfig struct {
	Lifetime float64 `yaml:"lifetime"` // Seconds
	Speed    float64 `yaml:"speed"`
	Fade     float64 `yaml:"fade"` // Alpha lost per tick before unit scaling
}

// SpawnerConfig defines the asteroid spawn schedule.
type SpawnerConfig struct {
	Initial      int     `yaml:"initial"`
	Interval     float64 `yaml:"interval"` // Seconds between bursts, 0 disables
	Burst        int     `yaml:"burst"`
	MaxAsteroids int     `yaml:"max_asteroids"` // 0 means unbounded
	CapPolicy    string  `yaml:"cap_policy"`    // "block" or "recycle"
}

// ParticlesConfig defines cosmetic particle effects.
type ParticlesConfig struct {
	Max     int           `yaml:"max"`
	Exhaust EmitterConfig `yaml:"exhaust"`
	Burst   EmitterConfig `yaml:"burst"`
}

// EmitterConfig defines one particle effect.
type EmitterConfig struct {
	Rate             float64 `yaml:"rate"`
	Amount           int     `yaml:"amount"`
	PositionVariance float64 `yaml:"position_variance"`
	SpreadDeg        float64 `yaml:"spread_deg"`
	Lifetime         float64 `yaml:"lifetime"`
	Size             Range   `yaml:"size"`
	Alpha            Range   `yaml:"alpha"`
	Speed            Range   `yaml:"speed"`
}

// Range is a start/end pair interpolated over a particle's life.
type Range struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to asteroid speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of the spawn interval removed at max difficulty
	MinInterval       float64 `yaml:"min_interval"`       // Floor for the spawn interval in seconds
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
