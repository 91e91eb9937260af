package sim

import (
	"math"

	"github.com/golang/geo/r2"
)

// Body is anything with a position on the playfield.
type Body interface {
	Position() r2.Point
}

// Integrate advances a position by velocity over dt seconds.
func Integrate(pos, vel r2.Point, dt, unitScale float64) r2.Point {
	return pos.Add(vel.Mul(dt * unitScale))
}

// ClampVelocity restricts each component of v to [-max, max].
func ClampVelocity(v r2.Point, max float64) r2.Point {
	return r2.Point{
		X: clampF(v.X, -max, max),
		Y: clampF(v.Y, -max, max),
	}
}

// Heading returns the unit vector for an angle in radians (0 = +X).
func Heading(angle float64) r2.Point {
	return r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
