package sim

import "github.com/golang/geo/r2"

// Bounds are the half-extents of the playfield, centred on the origin.
type Bounds struct {
	HalfW float64
	HalfH float64
}

// Contains reports whether p lies inside the closed bounds.
func (b Bounds) Contains(p r2.Point) bool {
	return p.X >= -b.HalfW && p.X <= b.HalfW && p.Y >= -b.HalfH && p.Y <= b.HalfH
}

// Expand returns bounds grown by m on every side.
func (b Bounds) Expand(m float64) Bounds {
	return Bounds{HalfW: b.HalfW + m, HalfH: b.HalfH + m}
}

// WrapPolicy selects how far past the edge an entity may travel before it
// is relocated to the opposite side.
type WrapPolicy int

const (
	// WrapTight triggers at the literal playfield edge (ship, projectiles).
	WrapTight WrapPolicy = iota
	// WrapLoose triggers half an asteroid extent past the edge.
	WrapLoose
	// WrapBand triggers at the outer edge of the spawn band. It holds
	// asteroids that have not yet entered the loose extent.
	WrapBand
)

// String returns the policy name.
func (w WrapPolicy) String() string {
	switch w {
	case WrapTight:
		return "tight"
	case WrapLoose:
		return "loose"
	case WrapBand:
		return "band"
	default:
		return "unknown"
	}
}

// Margin returns the distance past the edge at which the policy triggers.
func (w WrapPolicy) Margin(radius float64) float64 {
	switch w {
	case WrapLoose:
		return radius * 0.5
	case WrapBand:
		return radius
	default:
		return 0
	}
}

// Apply wraps pos to the playfield of p under this policy.
func (w WrapPolicy) Apply(pos r2.Point, p Params) r2.Point {
	return Wrap(pos, p.Bounds(), w.Margin(p.AsteroidRadius))
}

// Wrap relocates a position that left the field (plus margin) to just inside
// the opposite edge. Positions inside the field are returned unchanged.
func Wrap(p r2.Point, b Bounds, margin float64) r2.Point {
	return r2.Point{
		X: wrapAxis(p.X, b.HalfW, margin),
		Y: wrapAxis(p.Y, b.HalfH, margin),
	}
}

// wrapAxis applies the wrap rule on one axis.
func wrapAxis(v, bound, margin float64) float64 {
	limit := bound + margin
	if v > limit {
		return -(WrapInset*bound + margin)
	}
	if v < -limit {
		return WrapInset*bound + margin
	}
	return v
}
