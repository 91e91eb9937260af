package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Summary aggregates a whole recording.
type Summary struct {
	Header       Header
	Frames       int
	FirstTick    uint64
	LastTick     uint64
	Elapsed      float64
	MaxAsteroids int
	Spawned      int
	Despawned    int
	Shots        int // Projectiles first seen in a frame
	Retired      int
	Contacts     int // Ticks with the ship touching an asteroid
	Hits         int
}

// Summarize reads every frame from r.
func Summarize(r *Reader) (Summary, error) {
	s := Summary{Header: r.Header()}
	seen := make(map[uint64]struct{})

	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		if err != nil {
			return s, err
		}

		if s.Frames == 0 {
			s.FirstTick = f.Tick
		}
		s.Frames++
		s.LastTick = f.Tick
		s.Elapsed = f.Elapsed

		if len(f.Asteroids) > s.MaxAsteroids {
			s.MaxAsteroids = len(f.Asteroids)
		}
		s.Spawned += len(f.Spawned)
		s.Despawned += len(f.Despawned)
		s.Retired += len(f.Retired)
		s.Hits += len(f.Hits)
		if len(f.Collisions) > 0 {
			s.Contacts++
		}

		// A projectile retired on its first tick never shows up live.
		for _, p := range f.Projectiles {
			if _, ok := seen[p.ID]; !ok {
				seen[p.ID] = struct{}{}
				s.Shots++
			}
		}
		for _, id := range f.Retired {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				s.Shots++
			}
		}
	}
}

// SummarizeFile opens and summarizes a recording on disk.
func SummarizeFile(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()

	r, err := NewReader(f)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(r)
}
