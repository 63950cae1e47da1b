package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
// It mirrors defaults/snake.yaml and is used if the embedded file fails to parse.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Colors: SnakeColors{
			Body: "bright_green",
			Head: "green",
			Food: "bright_red",
			Wall: "gray",
		},
		Movement: SnakeMovement{
			MinMoveEveryTicks: 2,
		},
		Raster: RasterConfig{
			BlockSize:  20,
			Background: "#101010",
			Grid:       true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}
