// Package sim implements the asteroids simulation core: kinematics, boundary
// wrap, asteroid spawning, input-to-intent mapping, projectile lifecycle and
// collision detection. It has no rendering or terminal dependencies; a host
// feeds it elapsed time and key state once per frame via World.Tick.
package sim

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
)

// Sentinel errors returned by the simulation.
var (
	ErrInvalidParams = errors.New("sim: invalid params")
	ErrInvalidInput  = errors.New("sim: invalid tick input")
	ErrNoShip        = errors.New("sim: world has no ship")
)

// CapPolicy decides what the spawner does once MaxAsteroids is reached.
type CapPolicy string

const (
	// CapBlock skips spawning while the field is full.
	CapBlock CapPolicy = "block"
	// CapRecycle retires the oldest asteroid to make room for a new one.
	CapRecycle CapPolicy = "recycle"
)

// WrapInset is the fraction of the bound an entity lands at after wrapping.
// Landing strictly inside keeps the next wrap pass from firing again.
const WrapInset = 0.99

// Params holds every tunable constant the simulation needs.
// All distances are in world units where the playfield spans
// [-AspectRatio, AspectRatio] horizontally and [-1, 1] vertically.
type Params struct {
	AspectRatio float64 // Horizontal half-extent of the field
	UnitScale   float64 // Multiplier applied to every velocity integration

	// Ship
	MaxShipSpeed   float64  // Component-wise velocity cap
	ThrustImpulse  float64  // Velocity added per thrusting tick
	ShipStart      r2.Point // Initial position
	ShipStartVel   r2.Point // Initial velocity
	ShipStartAngle float64  // Initial heading in radians (0 = +X)

	// Asteroids
	AsteroidRadius   float64 // Shared collision radius and rendered extent
	MaxAsteroidSpeed float64 // Per-axis spawn velocity bound

	// Projectiles
	ProjectileLifetime float64 // Seconds before retirement
	ProjectileSpeed    float64 // Travel speed along the fixed heading
	ProjectileFade     float64 // Alpha lost per tick, before UnitScale

	// Spawner
	InitialAsteroids int       // Spawned when the world is created
	SpawnInterval    float64   // Seconds between bursts, 0 disables
	SpawnBurst       int       // Asteroids per burst
	MaxAsteroids     int       // 0 means unbounded
	CapPolicy        CapPolicy // Behaviour at MaxAsteroids

	Particles ParticleParams
}

// DefaultParams returns the stock tuning for a 16:9 field.
func DefaultParams() Params {
	return Params{
		AspectRatio:        16.0 / 9.0,
		UnitScale:          0.1,
		MaxShipSpeed:       15,
		ThrustImpulse:      0.5,
		AsteroidRadius:     0.4,
		MaxAsteroidSpeed:   6,
		ProjectileLifetime: 3,
		ProjectileSpeed:    30,
		ProjectileFade:     0.2,
		InitialAsteroids:   1,
		SpawnInterval:      4,
		SpawnBurst:         1,
		MaxAsteroids:       24,
		CapPolicy:          CapBlock,
		Particles:          DefaultParticleParams(),
	}
}

// RotationRate returns the ship's angular speed in radians per second.
// It is constant and independent of the ship's current linear speed.
func (p Params) RotationRate() float64 {
	return 2 * p.MaxShipSpeed * p.UnitScale
}

// Bounds returns the tight playfield half-extents.
func (p Params) Bounds() Bounds {
	return Bounds{HalfW: p.AspectRatio, HalfH: 1}
}

// Validate rejects configurations that indicate a caller bug.
func (p Params) Validate() error {
	switch {
	case p.AspectRatio <= 0:
		return fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidParams, p.AspectRatio)
	case p.UnitScale <= 0:
		return fmt.Errorf("%w: unit scale must be positive, got %v", ErrInvalidParams, p.UnitScale)
	case p.AsteroidRadius <= 0:
		return fmt.Errorf("%w: asteroid radius must be positive, got %v", ErrInvalidParams, p.AsteroidRadius)
	case p.MaxShipSpeed < 0:
		return fmt.Errorf("%w: max ship speed must not be negative, got %v", ErrInvalidParams, p.MaxShipSpeed)
	case p.MaxAsteroidSpeed < 0:
		return fmt.Errorf("%w: max asteroid speed must not be negative, got %v", ErrInvalidParams, p.MaxAsteroidSpeed)
	case p.ThrustImpulse < 0:
		return fmt.Errorf("%w: thrust impulse must not be negative, got %v", ErrInvalidParams, p.ThrustImpulse)
	case p.ProjectileLifetime <= 0:
		return fmt.Errorf("%w: projectile lifetime must be positive, got %v", ErrInvalidParams, p.ProjectileLifetime)
	case p.ProjectileSpeed < 0:
		return fmt.Errorf("%w: projectile speed must not be negative, got %v", ErrInvalidParams, p.ProjectileSpeed)
	case p.ProjectileFade < 0:
		return fmt.Errorf("%w: projectile fade must not be negative, got %v", ErrInvalidParams, p.ProjectileFade)
	case p.InitialAsteroids < 0:
		return fmt.Errorf("%w: initial asteroids must not be negative, got %d", ErrInvalidParams, p.InitialAsteroids)
	case p.SpawnInterval < 0:
		return fmt.Errorf("%w: spawn interval must not be negative, got %v", ErrInvalidParams, p.SpawnInterval)
	case p.SpawnBurst < 0:
		return fmt.Errorf("%w: spawn burst must not be negative, got %d", ErrInvalidParams, p.SpawnBurst)
	case p.MaxAsteroids < 0:
		return fmt.Errorf("%w: max asteroids must not be negative, got %d", ErrInvalidParams, p.MaxAsteroids)
	}

	switch p.CapPolicy {
	case CapBlock, CapRecycle:
	default:
		return fmt.Errorf("%w: unknown cap policy %q", ErrInvalidParams, p.CapPolicy)
	}

	if !p.Bounds().Contains(p.ShipStart) {
		return fmt.Errorf("%w: ship start %v outside the playfield", ErrInvalidParams, p.ShipStart)
	}

	return p.Particles.validate()
}
