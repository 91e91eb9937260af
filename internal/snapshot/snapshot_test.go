package snapshot

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-asteroids/internal/games/asteroids/sim"
)

// recordRun runs a world for n ticks, firing every 15 ticks, and records
// every tick into sw. The writer is closed on return.
func recordRun(t *testing.T, sw *Writer, p sim.Params, n int) sim.Stats {
	t.Helper()

	world, err := sim.NewWorld(p, sim.WithSeed(99))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}

	for i := 0; i < n; i++ {
		var keys sim.KeySet
		if i%15 == 0 {
			keys = sim.Keys(sim.KeyFire, sim.KeyThrust)
		}
		out, err := world.Tick(sim.TickInput{Elapsed: 1.0 / 60, Keys: keys})
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if err := sw.Record(out); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if sw.Frames() != n {
		t.Errorf("Frames() = %d, expected %d", sw.Frames(), n)
	}
	if err := sw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return world.Stats()
}

func testParams() sim.Params {
	p := sim.DefaultParams()
	p.InitialAsteroids = 3
	p.SpawnInterval = 0.5
	return p
}

// recordToBuffer records n ticks into memory.
func recordToBuffer(t *testing.T, n int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	p := testParams()
	sw, err := NewWriter(&buf, HeaderFor("asteroids", 99, p))
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	recordRun(t, sw, p, n)
	return &buf
}

func TestRoundTrip(t *testing.T) {
	buf := recordToBuffer(t, 120)

	r, err := NewReader(buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	h := r.Header()
	if h.Version != Version || h.Mode != "asteroids" || h.Seed != 99 {
		t.Errorf("Header() = %+v", h)
	}
	if h.AsteroidRadius != sim.DefaultParams().AsteroidRadius {
		t.Errorf("AsteroidRadius = %v, expected %v", h.AsteroidRadius, sim.DefaultParams().AsteroidRadius)
	}

	var tick uint64
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		tick++
		if f.Tick != tick {
			t.Fatalf("frame tick = %d, expected %d", f.Tick, tick)
		}
	}
	if tick != 120 {
		t.Errorf("read %d frames, expected 120", tick)
	}
}

func TestSummarizeMatchesStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.msgpack")

	p := testParams()
	w, err := Create(path, HeaderFor("asteroids", 99, p))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stats := recordRun(t, w, p, 300)

	s, err := SummarizeFile(path)
	if err != nil {
		t.Fatalf("SummarizeFile: %v", err)
	}

	if s.Frames != 300 || s.FirstTick != 1 || s.LastTick != 300 {
		t.Errorf("frames = %d (%d..%d), expected 300 (1..300)", s.Frames, s.FirstTick, s.LastTick)
	}
	if s.Shots != stats.Shots {
		t.Errorf("Shots = %d, expected %d", s.Shots, stats.Shots)
	}
	if s.Retired != stats.Retired {
		t.Errorf("Retired = %d, expected %d", s.Retired, stats.Retired)
	}
	if s.Hits != stats.Hits {
		t.Errorf("Hits = %d, expected %d", s.Hits, stats.Hits)
	}
	// Initial asteroids spawn before the first tick
	if s.Spawned != stats.Spawned-3 {
		t.Errorf("Spawned = %d, expected %d", s.Spawned, stats.Spawned-3)
	}
	if s.Despawned != stats.Despawned {
		t.Errorf("Despawned = %d, expected %d", s.Despawned, stats.Despawned)
	}
	if s.MaxAsteroids < 3 {
		t.Errorf("MaxAsteroids = %d, expected at least 3", s.MaxAsteroids)
	}
}

func TestReaderRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(Header{Version: Version + 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, err := NewReader(&buf)
	if !errors.Is(err, ErrVersion) {
		t.Errorf("NewReader() error = %v, expected ErrVersion", err)
	}
}

func TestReaderTruncated(t *testing.T) {
	buf := recordToBuffer(t, 10)
	data := buf.Bytes()[:buf.Len()-3]

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	var lastErr error
	for i := 0; i < 20; i++ {
		if _, lastErr = r.Next(); lastErr != nil {
			break
		}
	}
	if lastErr == nil || errors.Is(lastErr, io.EOF) {
		t.Errorf("truncated recording error = %v, expected a decode error", lastErr)
	}
}

func TestFrameFrom(t *testing.T) {
	out := sim.TickOutput{
		Tick: 7,
		Asteroids: []sim.Asteroid{
			{ID: 1}, {ID: 2},
		},
		Projectiles: []sim.Projectile{{ID: 5, Alpha: 0.5}},
		Collisions:  []sim.Collision{{AsteroidID: 2}},
		Hits:        []sim.Hit{{ProjectileID: 5, AsteroidID: 1}},
		Retired:     []sim.Projectile{{ID: 4}},
	}

	f := FrameFrom(out)
	if f.Tick != 7 || len(f.Asteroids) != 2 || len(f.Projectiles) != 1 {
		t.Fatalf("FrameFrom() = %+v", f)
	}
	if len(f.Collisions) != 1 || f.Collisions[0] != 2 {
		t.Errorf("Collisions = %v, expected [2]", f.Collisions)
	}
	if len(f.Hits) != 1 || f.Hits[0] != (HitState{Projectile: 5, Asteroid: 1}) {
		t.Errorf("Hits = %v", f.Hits)
	}
	if len(f.Retired) != 1 || f.Retired[0] != 4 {
		t.Errorf("Retired = %v, expected [4]", f.Retired)
	}
}
