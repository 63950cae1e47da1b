package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// TimeBased reports whether difficulty grows with elapsed ticks, so the
// move interval has to be recomputed every tick.
func (d *DifficultyManager) TimeBased() bool {
	return d.IsEnabled() && d.cfg.Progression.Type == "time"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the current speed multiplier (1.0 = base speed).
func (d *DifficultyManager) Speed(score int, ticks uint64) float64 {
	return 1.0 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
}

// MoveInterval scales a base ticks-per-move interval by the current speed,
// never going below minTicks (or 1). A non-positive speed keeps baseTicks.
func (d *DifficultyManager) MoveInterval(baseTicks, minTicks, score int, ticks uint64) int {
	minTicks = max(minTicks, 1)
	if baseTicks <= minTicks {
		return minTicks
	}

	speed := d.Speed(score, ticks)
	if speed <= 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return baseTicks
	}

	interval := int(math.Round(float64(baseTicks) / speed))
	return max(interval, minTicks)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
