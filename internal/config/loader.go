package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AsteroidsConfigFile is the file name looked up in the config directories.
const AsteroidsConfigFile = "asteroids.yaml"

// LoadAsteroids loads asteroids configuration.
// Search order: customPath -> ~/.arcade/configs/asteroids.yaml -> ./configs/asteroids.yaml -> embedded default
// Files may be partial; missing keys keep their default values.
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	cfg := DefaultAsteroidsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(AsteroidsConfigFile); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", AsteroidsConfigFile)); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultAsteroidsYAML, &cfg); err != nil {
		return DefaultAsteroidsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file over the defaults. Missing or
// malformed files are skipped so the next location can be tried.
func tryLoad(path string) (AsteroidsConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AsteroidsConfig{}, false
	}
	cfg := DefaultAsteroidsConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AsteroidsConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyAsteroidsPreset modifies the config based on a difficulty preset.
func ApplyAsteroidsPreset(cfg *AsteroidsConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the opening field based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Spawner.Initial = 1
		cfg.Asteroids.MaxSpeed = 4
		cfg.Spawner.Interval = 6
	case DifficultyHard:
		cfg.Spawner.Initial = 5
		cfg.Asteroids.MaxSpeed = 8
		cfg.Spawner.Interval = 2.5
		cfg.Spawner.Burst = 2
	}
}
