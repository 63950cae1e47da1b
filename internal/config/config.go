// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Colors     SnakeColors      `yaml:"colors"`
	Movement   SnakeMovement    `yaml:"movement"`
	Raster     RasterConfig     `yaml:"raster"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeColors names the palette entries used for each element.
// Names match core.ParseColor (e.g. "bright_green").
type SnakeColors struct {
	Body string `yaml:"body"`
	Head string `yaml:"head"`
	Food string `yaml:"food"`
	Wall string `yaml:"wall"`
}

// SnakeMovement defines movement pacing.
type SnakeMovement struct {
	// MinMoveEveryTicks is the fastest the snake may move, in ticks per cell.
	MinMoveEveryTicks int `yaml:"min_move_every_ticks"`
}

// RasterConfig defines pixel rendering for image export.
type RasterConfig struct {
	BlockSize  int    `yaml:"block_size"` // Pixels per grid cell
	Background string `yaml:"background"` // Hex color, e.g. "#101010"
	Grid       bool   `yaml:"grid"`       // Draw grid lines between cells
}

// DifficultyConfig defines how difficulty scales during gameplay.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Speed added at max difficulty (1.0 = twice as fast)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name. The empty string is allowed and means
// "keep the config file's settings".
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
