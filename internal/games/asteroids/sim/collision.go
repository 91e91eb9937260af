package sim

// Collision records the ship overlapping an asteroid.
type Collision struct {
	AsteroidID uint64
	Distance   float64
}

// Hit records a projectile overlapping an asteroid.
type Hit struct {
	ProjectileID uint64
	AsteroidID   uint64
	Distance     float64
}

// Overlaps reports whether two bodies are strictly closer than radius.
func Overlaps(a, b Body, radius float64) (float64, bool) {
	d := Distance(a.Position(), b.Position())
	return d, d < radius
}

// DetectShipCollisions tests the ship against every asteroid and returns
// every overlapping pair in asteroid order.
func DetectShipCollisions(ship Body, asteroids []Asteroid, radius float64) []Collision {
	var out []Collision
	for _, a := range asteroids {
		if d, ok := Overlaps(ship, a, radius); ok {
			out = append(out, Collision{AsteroidID: a.ID, Distance: d})
		}
	}
	return out
}

// DetectHits tests every live projectile against every asteroid.
func DetectHits(projectiles []Projectile, asteroids []Asteroid, radius float64) []Hit {
	var out []Hit
	for _, pr := range projectiles {
		if pr.Retired {
			continue
		}
		for _, a := range asteroids {
			if d, ok := Overlaps(pr, a, radius); ok {
				out = append(out, Hit{ProjectileID: pr.ID, AsteroidID: a.ID, Distance: d})
			}
		}
	}
	return out
}
