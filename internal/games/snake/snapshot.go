package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StatePaused       GameStateType = "paused"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	Level          int    // Current level (1-indexed for display)
	Mode           string // "campaign" or "endless"
	Score          int
	FoodEaten      int // Food eaten in current level
	Body           []Cell
	HeadX          int
	HeadY          int
	Dir            Direction
	FoodX          int
	FoodY          int
	MoveEveryTicks int
	State          GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	snap := Snapshot{
		Tick:           g.tick,
		Level:          g.levelIndex + 1,
		Mode:           string(g.mode),
		Score:          g.score,
		FoodEaten:      g.foodEaten,
		FoodX:          g.food.X,
		FoodY:          g.food.Y,
		MoveEveryTicks: g.moveEveryTicks,
		State:          state,
	}

	if g.body != nil {
		snap.Body = g.body.Cells()
		snap.HeadX, snap.HeadY = g.body.HeadPosition()
		snap.Dir = g.body.HeadDirection()
	}

	return snap
}
