package sim

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// TickInput is what the host supplies once per frame.
type TickInput struct {
	Elapsed float64 // Seconds since the previous tick
	Keys    KeySet
}

// TickOutput is the state after a tick. Slices are copies owned by the
// caller.
type TickOutput struct {
	Tick        uint64
	Elapsed     float64 // Total simulated seconds
	Ship        Ship
	Asteroids   []Asteroid
	Projectiles []Projectile
	Particles   []Particle
	Collisions  []Collision
	Hits        []Hit
	Retired     []Projectile
	Spawned     []Asteroid
	Despawned   []uint64
}

// Stats are running totals over the life of a World.
type Stats struct {
	Ticks      uint64
	Elapsed    float64
	Spawned    int
	Despawned  int
	Shots      int
	Retired    int
	Collisions int // Contact onsets, not per-tick overlaps
	Hits       int
}

// Tuning holds the parameters that may change while a run is in progress.
type Tuning struct {
	MaxAsteroidSpeed float64
	SpawnInterval    float64
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for debug events.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSeed seeds the world's random source.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the world's random source.
func WithRand(r *rand.Rand) Option {
	return func(w *World) {
		if r != nil {
			w.rng = r
		}
	}
}

// World owns every entity and runs the systems in a fixed order each tick.
// A World is not safe for concurrent use.
type World struct {
	params    Params
	logger    *log.Logger
	rng       *rand.Rand
	spawner   *Spawner
	mapper    IntentMapper
	particles *ParticleSystem

	ship        *Ship
	asteroids   []Asteroid
	projectiles []Projectile

	nextID   uint64
	touching map[uint64]bool
	stats    Stats
}

// NewWorld validates p and creates a world with the ship at its start pose
// and the initial asteroids spawned.
func NewWorld(p Params, opts ...Option) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		params:   p,
		logger:   log.New(io.Discard),
		touching: make(map[uint64]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w.ship = &Ship{
		Pos:      p.ShipStart,
		Vel:      p.ShipStartVel,
		Angle:    p.ShipStartAngle,
		MaxSpeed: p.MaxShipSpeed,
	}
	w.spawner = NewSpawner(p, w.rng)
	w.particles = NewParticleSystem(p.Particles, w.rng)

	for i := 0; i < p.InitialAsteroids; i++ {
		w.spawnOne()
	}
	return w, nil
}

// Params returns the parameters the world runs with.
func (w *World) Params() Params {
	return w.params
}

// Stats returns running totals.
func (w *World) Stats() Stats {
	return w.stats
}

// Ship returns a copy of the ship.
func (w *World) Ship() (Ship, error) {
	if w.ship == nil {
		return Ship{}, ErrNoShip
	}
	return *w.ship, nil
}

// Asteroids returns a copy of the live asteroids in spawn order.
func (w *World) Asteroids() []Asteroid {
	return append([]Asteroid(nil), w.asteroids...)
}

// Projectiles returns a copy of the live projectiles in fire order.
func (w *World) Projectiles() []Projectile {
	return append([]Projectile(nil), w.projectiles...)
}

// AddAsteroid places an asteroid directly, bypassing the spawner and the
// cap. It returns the assigned ID.
func (w *World) AddAsteroid(a Asteroid) uint64 {
	a.ID = w.newID()
	w.asteroids = append(w.asteroids, a)
	return a.ID
}

// Retune changes the in-run tuning. The new values are validated against
// the rest of the parameters.
func (w *World) Retune(t Tuning) error {
	p := w.params
	p.MaxAsteroidSpeed = t.MaxAsteroidSpeed
	p.SpawnInterval = t.SpawnInterval
	if err := p.Validate(); err != nil {
		return err
	}
	w.params = p
	w.spawner.SetMaxSpeed(t.MaxAsteroidSpeed)
	w.spawner.SetInterval(t.SpawnInterval)
	return nil
}

// Tick advances the world by in.Elapsed seconds. Systems run in this order:
// intent, ship kinematics and fire, asteroid kinematics, collision
// detection, boundary wrap, projectile lifecycle, spawner, particles.
func (w *World) Tick(in TickInput) (TickOutput, error) {
	if w.ship == nil {
		return TickOutput{}, ErrNoShip
	}
	if in.Elapsed < 0 || math.IsNaN(in.Elapsed) || math.IsInf(in.Elapsed, 0) {
		return TickOutput{}, fmt.Errorf("%w: elapsed %v", ErrInvalidInput, in.Elapsed)
	}

	dt := in.Elapsed
	p := w.params
	var out TickOutput

	intent := w.mapper.Map(in.Keys)

	Steer(w.ship, intent, p, dt)
	if intent.Fire {
		pr := NewProjectile(w.newID(), *w.ship, p)
		w.projectiles = append(w.projectiles, pr)
		w.stats.Shots++
		w.logger.Debug("projectile fired", "id", pr.ID, "angle", pr.Angle)
	}
	if intent.Thrust {
		w.particles.Thrust(*w.ship, dt)
	}

	for i := range w.asteroids {
		a := &w.asteroids[i]
		a.Pos = Integrate(a.Pos, a.Vel, dt, p.UnitScale)
	}

	out.Collisions = DetectShipCollisions(w.ship, w.asteroids, p.AsteroidRadius)
	out.Hits = DetectHits(w.projectiles, w.asteroids, p.AsteroidRadius)
	w.recordContacts(out.Collisions, out.Hits)

	w.ship.Pos = WrapTight.Apply(w.ship.Pos, p)
	loose := p.Bounds().Expand(WrapLoose.Margin(p.AsteroidRadius))
	for i := range w.asteroids {
		a := &w.asteroids[i]
		if !a.Entered && loose.Contains(a.Pos) {
			a.Entered = true
		}
		a.Pos = a.WrapPolicy().Apply(a.Pos, p)
	}

	var retired []Projectile
	w.projectiles, retired = advanceProjectiles(w.projectiles, dt, p)
	for _, pr := range retired {
		w.logger.Debug("projectile retired", "id", pr.ID)
	}
	out.Retired = retired
	w.stats.Retired += len(retired)

	for n := w.spawner.Due(dt); n > 0; n-- {
		spawned, despawned, ok := w.spawnOne()
		if despawned != 0 {
			out.Despawned = append(out.Despawned, despawned)
		}
		if ok {
			out.Spawned = append(out.Spawned, spawned)
		}
	}

	w.particles.Update(dt, p)

	w.stats.Ticks++
	w.stats.Elapsed += dt

	out.Tick = w.stats.Ticks
	out.Elapsed = w.stats.Elapsed
	out.Ship = *w.ship
	out.Asteroids = w.Asteroids()
	out.Projectiles = w.Projectiles()
	out.Particles = w.particles.Particles()
	return out, nil
}

// spawnOne spawns a single asteroid subject to the cap policy. It returns
// the asteroid, the ID of an asteroid recycled to make room (0 if none) and
// whether anything was spawned.
func (w *World) spawnOne() (Asteroid, uint64, bool) {
	var despawned uint64
	if limit := w.params.MaxAsteroids; limit > 0 && len(w.asteroids) >= limit {
		if w.params.CapPolicy != CapRecycle {
			return Asteroid{}, 0, false
		}
		despawned = w.asteroids[0].ID
		w.asteroids = append(w.asteroids[:0], w.asteroids[1:]...)
		delete(w.touching, despawned)
		w.stats.Despawned++
		w.logger.Debug("asteroid recycled", "id", despawned)
	}

	a := w.spawner.SpawnAsteroid()
	a.ID = w.newID()
	w.asteroids = append(w.asteroids, a)
	w.stats.Spawned++
	w.logger.Debug("asteroid spawned", "id", a.ID, "side", a.Side, "x", a.Pos.X, "y", a.Pos.Y)
	return a, despawned, true
}

// recordContacts updates totals and emits an impact burst for every ship
// contact that was not already touching on the previous tick.
func (w *World) recordContacts(collisions []Collision, hits []Hit) {
	now := make(map[uint64]bool, len(collisions))
	for _, c := range collisions {
		now[c.AsteroidID] = true
		w.logger.Debug("collision", "asteroid", c.AsteroidID, "distance", c.Distance)
		if !w.touching[c.AsteroidID] {
			w.stats.Collisions++
			w.particles.Burst(w.ship.Pos)
		}
	}
	w.touching = now

	for _, h := range hits {
		w.logger.Debug("hit", "projectile", h.ProjectileID, "asteroid", h.AsteroidID, "distance", h.Distance)
	}
	w.stats.Hits += len(hits)
}

func (w *World) newID() uint64 {
	w.nextID++
	return w.nextID
}
