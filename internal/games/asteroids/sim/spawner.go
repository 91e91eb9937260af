package sim

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// Side identifies the playfield edge an asteroid entered from.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Spawner produces asteroids just outside the playfield on a schedule.
type Spawner struct {
	params Params
	rng    *rand.Rand
	timer  float64
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(p Params, rng *rand.Rand) *Spawner {
	return &Spawner{params: p, rng: rng}
}

// SetInterval changes the burst interval. The elapsed timer is kept.
func (s *Spawner) SetInterval(interval float64) {
	s.params.SpawnInterval = interval
}

// SetMaxSpeed changes the per-axis bound for new asteroid velocities.
func (s *Spawner) SetMaxSpeed(speed float64) {
	s.params.MaxAsteroidSpeed = speed
}

// Due advances the schedule by dt and returns how many asteroids should be
// spawned this tick. A zero interval disables scheduled spawning.
func (s *Spawner) Due(dt float64) int {
	if s.params.SpawnInterval <= 0 || s.params.SpawnBurst == 0 {
		return 0
	}

	s.timer += dt
	n := 0
	for s.timer >= s.params.SpawnInterval {
		s.timer -= s.params.SpawnInterval
		n += s.params.SpawnBurst
	}
	return n
}

// SpawnAsteroid samples a new asteroid. The caller assigns its ID.
func (s *Spawner) SpawnAsteroid() Asteroid {
	maxV := s.params.MaxAsteroidSpeed
	vel := r2.Point{
		X: s.uniform(-maxV, maxV),
		Y: s.uniform(-maxV, maxV),
	}

	side := Side(s.rng.Intn(4))
	return Asteroid{
		Pos:  s.bandPosition(side),
		Vel:  vel,
		Side: side,
	}
}

// bandPosition samples a point in the strip of width AsteroidRadius just
// past the given edge. The outer coordinate is drawn from a half-open range
// so it never lands exactly on the edge.
func (s *Spawner) bandPosition(side Side) r2.Point {
	a := s.params.AspectRatio
	w := s.params.AsteroidRadius

	switch side {
	case SideTop:
		return r2.Point{X: s.uniform(-(a + w), a+w), Y: 1 + s.beyond(w)}
	case SideBottom:
		return r2.Point{X: s.uniform(-(a + w), a+w), Y: -(1 + s.beyond(w))}
	case SideRight:
		return r2.Point{X: a + s.beyond(w), Y: s.uniform(-(1 + w), 1+w)}
	default:
		return r2.Point{X: -(a + s.beyond(w)), Y: s.uniform(-(1 + w), 1+w)}
	}
}

// uniform returns a value in [lo, hi).
func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// beyond returns a value in (0, w].
func (s *Spawner) beyond(w float64) float64 {
	return w * (1 - s.rng.Float64())
}
