package sim

// NewProjectile creates a projectile at the ship's pose.
func NewProjectile(id uint64, ship Ship, p Params) Projectile {
	return Projectile{
		ID:        id,
		Pos:       ship.Pos,
		Angle:     ship.Angle,
		Remaining: p.ProjectileLifetime,
		Alpha:     1,
	}
}

// Advance moves the projectile one tick along its fixed heading, wraps it to
// the tight bounds and fades it. It reports true on the tick the lifetime
// runs out; later calls on a retired projectile do nothing.
func (pr *Projectile) Advance(dt float64, p Params) bool {
	if pr.Retired {
		return false
	}

	vel := Heading(pr.Angle).Mul(p.ProjectileSpeed)
	pr.Pos = Integrate(pr.Pos, vel, dt, p.UnitScale)
	pr.Pos = WrapTight.Apply(pr.Pos, p)

	pr.Remaining -= dt
	pr.Alpha -= p.ProjectileFade * p.UnitScale
	if pr.Alpha < 0 {
		pr.Alpha = 0
	}

	if pr.Remaining <= 0 {
		pr.Retired = true
		return true
	}
	return false
}

// advanceProjectiles runs the lifecycle stage over live projectiles and
// returns the survivors plus those retired this tick. The survivors reuse
// the backing array of live.
func advanceProjectiles(live []Projectile, dt float64, p Params) (kept, retired []Projectile) {
	kept = live[:0]
	for i := range live {
		pr := live[i]
		if pr.Advance(dt, p) {
			retired = append(retired, pr)
			continue
		}
		kept = append(kept, pr)
	}
	return kept, retired
}
