package sim

// Key is one control the player can hold.
type Key uint8

const (
	KeyRotateLeft Key = 1 << iota
	KeyRotateRight
	KeyThrust
	KeyFire
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyRotateLeft:
		return "rotate_left"
	case KeyRotateRight:
		return "rotate_right"
	case KeyThrust:
		return "thrust"
	case KeyFire:
		return "fire"
	default:
		return "unknown"
	}
}

// KeySet is the set of keys held during a tick.
type KeySet uint8

// Keys builds a set from individual keys.
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s |= KeySet(k)
	}
	return s
}

// Has reports whether k is held.
func (s KeySet) Has(k Key) bool {
	return s&KeySet(k) != 0
}

// With returns the set with k added.
func (s KeySet) With(k Key) KeySet {
	return s | KeySet(k)
}

// Without returns the set with k removed.
func (s KeySet) Without(k Key) KeySet {
	return s &^ KeySet(k)
}

// Intent is the per-tick command derived from held keys.
type Intent struct {
	Turn   float64 // +1 counter-clockwise, -1 clockwise, 0 none
	Thrust bool
	Fire   bool
}

// IntentMapper turns key state into intents. It remembers the fire key so
// that holding it produces a single shot.
type IntentMapper struct {
	fireDown bool
}

// Map converts the keys held this tick into an Intent.
func (m *IntentMapper) Map(keys KeySet) Intent {
	var in Intent
	if keys.Has(KeyRotateLeft) {
		in.Turn++
	}
	if keys.Has(KeyRotateRight) {
		in.Turn--
	}
	in.Thrust = keys.Has(KeyThrust)

	fire := keys.Has(KeyFire)
	in.Fire = fire && !m.fireDown
	m.fireDown = fire
	return in
}

// Reset forgets the previous fire state.
func (m *IntentMapper) Reset() {
	m.fireDown = false
}

// Steer applies rotation and thrust to the ship, then integrates its
// position. Position integrates every tick regardless of input.
func Steer(ship *Ship, in Intent, p Params, dt float64) {
	ship.Angle += in.Turn * p.RotationRate() * dt

	if in.Thrust {
		ship.Vel = ship.Vel.Add(Heading(ship.Angle).Mul(p.ThrustImpulse))
		ship.Vel = ClampVelocity(ship.Vel, ship.MaxSpeed)
	}

	ship.Pos = Integrate(ship.Pos, ship.Vel, dt, p.UnitScale)
}
