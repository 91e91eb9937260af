package sim

import "github.com/golang/geo/r2"

// Ship is the player-controlled body.
type Ship struct {
	Pos      r2.Point
	Vel      r2.Point
	Angle    float64
	MaxSpeed float64
}

// Position implements Body.
func (s Ship) Position() r2.Point { return s.Pos }

// Asteroid drifts in a straight line at the velocity it spawned with.
type Asteroid struct {
	ID      uint64
	Pos     r2.Point
	Vel     r2.Point
	Side    Side
	Entered bool // Has been inside the loose extent at least once
}

// Position implements Body.
func (a Asteroid) Position() r2.Point { return a.Pos }

// WrapPolicy returns the wrap rule for the asteroid. Until it first reaches
// the loose extent it wraps at the outer edge of the spawn band, so a fresh
// spawn keeps its side.
func (a Asteroid) WrapPolicy() WrapPolicy {
	if a.Entered {
		return WrapLoose
	}
	return WrapBand
}

// Projectile travels along the ship heading captured at fire time.
type Projectile struct {
	ID        uint64
	Pos       r2.Point
	Angle     float64
	Remaining float64
	Alpha     float64
	Retired   bool
}

// Position implements Body.
func (p Projectile) Position() r2.Point { return p.Pos }
