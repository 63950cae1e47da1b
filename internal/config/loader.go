package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads Snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
//
// Only a failing customPath is reported as an error; broken files on the
// implicit search path are skipped.
func LoadSnake(customPath string) (SnakeConfig, error) {
	if customPath != "" {
		cfg := DefaultSnakeConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath("snake.yaml"), filepath.Join("configs", "snake.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, ok := readSnakeFile(path); ok {
			return cfg, nil
		}
	}

	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readSnakeFile parses a config file layered over the defaults, so a file may
// override only the keys it cares about.
func readSnakeFile(path string) (SnakeConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SnakeConfig{}, false
	}
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config unchanged.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	if preset == DifficultyHard && cfg.Movement.MinMoveEveryTicks > 1 {
		cfg.Movement.MinMoveEveryTicks--
	}
}
