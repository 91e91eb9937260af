package asteroids

import (
	"github.com/vovakirdan/tui-asteroids/internal/core"
	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// Terminals deliver key presses and auto-repeats but no releases. KeyLatch
// turns that stream into held-key state: a key stays down for a window of
// ticks after its last press or repeat.
//
// Before auto-repeat begins the terminal is silent for its repeat delay,
// which is longer than the hold window. A key given a repeat delay stays
// down that long after a fresh press, so the first repeat does not read as
// a second press.
type KeyLatch struct {
	window int
	delay  map[sim.Key]int
	ttl    map[sim.Key]int
}

// actionKeys maps platform actions to simulation keys.
var actionKeys = map[core.Action]sim.Key{
	core.ActionRotateLeft:  sim.KeyRotateLeft,
	core.ActionRotateRight: sim.KeyRotateRight,
	core.ActionThrust:      sim.KeyThrust,
	core.ActionFire:        sim.KeyFire,
}

// NewKeyLatch creates a latch that holds keys for window ticks.
func NewKeyLatch(window int) *KeyLatch {
	if window < 1 {
		window = 1
	}
	return &KeyLatch{
		window: window,
		delay:  make(map[sim.Key]int),
		ttl:    make(map[sim.Key]int, len(actionKeys)),
	}
}

// SetRepeatDelay holds key for delay ticks after a fresh press.
func (l *KeyLatch) SetRepeatDelay(key sim.Key, delay int) {
	l.delay[key] = delay
}

// LatchWindow returns the hold window for a tick rate, about 150ms.
func LatchWindow(tickRate int) int {
	return core.Max(2, tickRate*3/20)
}

// RepeatDelay returns about 600ms in ticks, enough to cover the usual
// terminal pause before auto-repeat starts.
func RepeatDelay(tickRate int) int {
	return core.Max(2, tickRate*3/5)
}

// Update records this tick's presses and returns the keys considered held.
func (l *KeyLatch) Update(in core.InputFrame) sim.KeySet {
	for action, key := range actionKeys {
		if !in.Has(action) {
			continue
		}
		if l.ttl[key] > 0 {
			l.ttl[key] = l.window
		} else {
			l.ttl[key] = core.Max(l.window, l.delay[key])
		}
	}

	var held sim.KeySet
	for key, n := range l.ttl {
		if n <= 0 {
			continue
		}
		held = held.With(key)
		l.ttl[key] = n - 1
	}
	return held
}

// Reset releases every key.
func (l *KeyLatch) Reset() {
	for key := range l.ttl {
		delete(l.ttl, key)
	}
}
