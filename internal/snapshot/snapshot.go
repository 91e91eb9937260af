// Package snapshot records simulation ticks as a stream of msgpack frames
// so an external renderer can replay a run, and reads them back.
//
// A recording is one Header followed by any number of Frames, each encoded
// as a separate msgpack value.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// Version is the recording format version written into every header.
const Version = 1

// ErrVersion is returned when a recording uses an unknown format version.
var ErrVersion = errors.New("snapshot: unsupported version")

// Header describes the run a recording belongs to.
type Header struct {
	Version        int     `msgpack:"v"`
	Mode           string  `msgpack:"mode"`
	Seed           int64   `msgpack:"seed"`
	AspectRatio    float64 `msgpack:"aspect"`
	UnitScale      float64 `msgpack:"unit"`
	AsteroidRadius float64 `msgpack:"radius"`
}

// HeaderFor builds a header from simulation parameters.
func HeaderFor(mode string, seed int64, p sim.Params) Header {
	return Header{
		Version:        Version,
		Mode:           mode,
		Seed:           seed,
		AspectRatio:    p.AspectRatio,
		UnitScale:      p.UnitScale,
		AsteroidRadius: p.AsteroidRadius,
	}
}

// ShipState is the ship in one frame.
type ShipState struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	VX    float64 `msgpack:"vx"`
	VY    float64 `msgpack:"vy"`
	Angle float64 `msgpack:"r"`
}

// AsteroidState is one asteroid in one frame.
type AsteroidState struct {
	ID uint64  `msgpack:"id"`
	X  float64 `msgpack:"x"`
	Y  float64 `msgpack:"y"`
}

// ProjectileState is one live projectile in one frame.
type ProjectileState struct {
	ID    uint64  `msgpack:"id"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Alpha float64 `msgpack:"a"`
}

// ParticleState is one particle in one frame.
type ParticleState struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Size  float64 `msgpack:"s"`
	Alpha float64 `msgpack:"a"`
}

// HitState is one projectile overlapping one asteroid.
type HitState struct {
	Projectile uint64 `msgpack:"p"`
	Asteroid   uint64 `msgpack:"a"`
}

// Frame is everything a renderer needs to draw one tick.
type Frame struct {
	Tick        uint64            `msgpack:"tick"`
	Elapsed     float64           `msgpack:"t"`
	Ship        ShipState         `msgpack:"ship"`
	Asteroids   []AsteroidState   `msgpack:"ast"`
	Projectiles []ProjectileState `msgpack:"pr"`
	Particles   []ParticleState   `msgpack:"pt,omitempty"`
	Collisions  []uint64          `msgpack:"col,omitempty"` // Asteroid IDs touching the ship
	Hits        []HitState        `msgpack:"hit,omitempty"`
	Spawned     []uint64          `msgpack:"sp,omitempty"`
	Despawned   []uint64          `msgpack:"ds,omitempty"`
	Retired     []uint64          `msgpack:"rt,omitempty"`
}

// FrameFrom converts a tick output into a frame.
func FrameFrom(out sim.TickOutput) Frame {
	f := Frame{
		Tick:    out.Tick,
		Elapsed: out.Elapsed,
		Ship: ShipState{
			X:     out.Ship.Pos.X,
			Y:     out.Ship.Pos.Y,
			VX:    out.Ship.Vel.X,
			VY:    out.Ship.Vel.Y,
			Angle: out.Ship.Angle,
		},
		Asteroids:   make([]AsteroidState, len(out.Asteroids)),
		Projectiles: make([]ProjectileState, len(out.Projectiles)),
		Despawned:   out.Despawned,
	}
	for i, a := range out.Asteroids {
		f.Asteroids[i] = AsteroidState{ID: a.ID, X: a.Pos.X, Y: a.Pos.Y}
	}
	for i, p := range out.Projectiles {
		f.Projectiles[i] = ProjectileState{ID: p.ID, X: p.Pos.X, Y: p.Pos.Y, Alpha: p.Alpha}
	}
	for _, p := range out.Particles {
		f.Particles = append(f.Particles, ParticleState{X: p.Pos.X, Y: p.Pos.Y, Size: p.Size, Alpha: p.Alpha})
	}
	for _, c := range out.Collisions {
		f.Collisions = append(f.Collisions, c.AsteroidID)
	}
	for _, h := range out.Hits {
		f.Hits = append(f.Hits, HitState{Projectile: h.ProjectileID, Asteroid: h.AsteroidID})
	}
	for _, a := range out.Spawned {
		f.Spawned = append(f.Spawned, a.ID)
	}
	for _, p := range out.Retired {
		f.Retired = append(f.Retired, p.ID)
	}
	return f
}

// Writer streams frames to an io.Writer.
type Writer struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
	frames int
}

// NewWriter writes the header and returns a writer for the frames.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	if h.Version == 0 {
		h.Version = Version
	}
	buf := bufio.NewWriter(w)
	sw := &Writer{buf: buf, enc: msgpack.NewEncoder(buf)}
	if err := sw.enc.Encode(h); err != nil {
		return nil, fmt.Errorf("snapshot: write header: %w", err)
	}
	return sw, nil
}

// Create opens path for writing and starts a recording.
func Create(path string, h Header) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	w, err := NewWriter(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// Record appends one tick. It satisfies the game's tick recorder.
func (w *Writer) Record(out sim.TickOutput) error {
	return w.WriteFrame(FrameFrom(out))
}

// WriteFrame appends one frame.
func (w *Writer) WriteFrame(f Frame) error {
	if err := w.enc.Encode(f); err != nil {
		return fmt.Errorf("snapshot: write frame %d: %w", f.Tick, err)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// Close flushes buffered frames and closes the file opened by Create.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("snapshot: flush: %w", err)
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

// Reader decodes a recording.
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and checks the header.
func NewReader(r io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return &Reader{dec: dec, header: h}, nil
}

// Header returns the recording header.
func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("snapshot: read frame: %w", err)
	}
	return f, nil
}
