package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	var cfg AsteroidsConfig
	if err := yaml.Unmarshal(GetDefaultYAML("asteroids"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultAsteroidsConfig()) {
		t.Errorf("embedded YAML = %+v\nexpected %+v", cfg, DefaultAsteroidsConfig())
	}
}

func TestGetDefaultYAMLUnknownGame(t *testing.T) {
	if GetDefaultYAML("flappy") != nil {
		t.Error("GetDefaultYAML() for unknown game should be nil")
	}
}

func TestLoadAsteroidsCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("asteroids:\n  radius: 0.25\nspawner:\n  cap_policy: recycle\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadAsteroids(path)
	if err != nil {
		t.Fatalf("LoadAsteroids() error = %v", err)
	}

	if cfg.Asteroids.Radius != 0.25 {
		t.Errorf("Radius = %v, expected 0.25", cfg.Asteroids.Radius)
	}
	if cfg.Spawner.CapPolicy != "recycle" {
		t.Errorf("CapPolicy = %q, expected recycle", cfg.Spawner.CapPolicy)
	}
	// Untouched keys keep defaults.
	if cfg.Ship.MaxSpeed != 15 {
		t.Errorf("Ship.MaxSpeed = %v, expected default 15", cfg.Ship.MaxSpeed)
	}
}

func TestLoadAsteroidsErrors(t *testing.T) {
	if _, err := LoadAsteroids(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadAsteroids() with missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field: [not, a, map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadAsteroids(path); err == nil {
		t.Error("LoadAsteroids() with malformed file should fail")
	}
}

func TestLoadAsteroidsUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := []byte("projectiles:\n  lifetime: 1.5\n")
	if err := os.WriteFile(filepath.Join(dir, AsteroidsConfigFile), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadAsteroids("")
	if err != nil {
		t.Fatalf("LoadAsteroids() error = %v", err)
	}
	if cfg.Projectiles.Lifetime != 1.5 {
		t.Errorf("Lifetime = %v, expected 1.5 from user config", cfg.Projectiles.Lifetime)
	}
}

func TestApplyAsteroidsPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		initial      int
	}{
		{DifficultyEasy, true, 0.0, 1},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 5},
		{DifficultyFixed, false, 0.0, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultAsteroidsConfig()
			ApplyAsteroidsPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initialLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initialLevel)
			}
			if cfg.Spawner.Initial != tc.initial {
				t.Errorf("Spawner.Initial = %d, expected %d", cfg.Spawner.Initial, tc.initial)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
		ok       bool
	}{
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"", DifficultyNormal, true},
		{"nightmare", "", false},
	}

	for _, tc := range tests {
		got, ok := ParsePreset(tc.in)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParsePreset(%q) = (%q, %v), expected (%q, %v)", tc.in, got, ok, tc.expected, tc.ok)
		}
	}
}
