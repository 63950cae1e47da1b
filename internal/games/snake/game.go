// Package snake implements the Snake game: the snake body itself and the
// tick-driven game loop that steers it around walls and food.
package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Game IDs used for the registry and score storage.
const (
	IDCampaign = "snake"
	IDEndless  = "snake_endless"
)

const (
	levelClearDelay = 90 // Ticks the "level cleared" overlay stays up (~1.5s at 60 FPS)
	endlessFoodStep = 10 // Food per level in endless mode
	hudHeight       = 2
)

// Game implements the Snake game loop around a Snake body.
type Game struct {
	mode       Mode
	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tick       uint64
	score      int
	foodEaten  int // Food eaten in current level
	levelIndex int // Current level (0-indexed, keeps growing in endless)
	startLevel int // 1-based campaign level for the next Reset, 0 = first

	baseMoveTicks  int // Level interval before difficulty scaling
	moveEveryTicks int
	moveTicker     int

	body    *Snake
	nextDir Direction // Buffered direction for next move

	mapWidth   int
	mapHeight  int
	walls      map[Cell]bool
	food       Cell
	mapOffsetX int
	mapOffsetY int

	screenW int
	screenH int

	gameOver     bool
	levelCleared bool
	won          bool
	paused       bool
	tooSmall     bool

	levelClearTicks int

	bodyColor core.Color
	headColor core.Color
	foodColor core.Color
	wallColor core.Color
}

// Package-level settings applied on every Reset. The CLI sets them once,
// before any game runs.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the YAML config file used by subsequent Resets.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by subsequent Resets.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// New creates a new campaign mode Snake game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode Snake game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register(IDCampaign, "Snake", func() registry.Game { return New() })
	registry.Register(IDEndless, "Snake (Endless)", func() registry.Game { return NewEndless() })
}

// SetStartLevel sets the campaign level (1-based) the next Reset starts at.
// 0 means the first level. Ignored in endless mode.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDCampaign
}

// Title returns the display name.
func (g *Game) Title() string {
	return registry.Title(g.ID())
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.loadConfig()

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= LevelCount() {
		g.levelIndex = g.startLevel - 1
		g.startLevel = 0 // Consumed
	} else {
		g.levelIndex = 0
	}

	g.loadLevel()
}

// loadConfig reads the YAML config. A broken file falls back to defaults; the
// CLI validates --config before the game starts.
func (g *Game) loadConfig() {
	cfg, err := config.LoadSnake(configPath)
	if err != nil {
		cfg = config.DefaultSnakeConfig()
	}
	config.ApplySnakePreset(&cfg, difficultyPreset)

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.bodyColor = colorOr(cfg.Colors.Body, core.ColorBrightGreen)
	g.headColor = colorOr(cfg.Colors.Head, core.ColorGreen)
	g.foodColor = colorOr(cfg.Colors.Food, core.ColorBrightRed)
	g.wallColor = colorOr(cfg.Colors.Wall, core.ColorGray)
}

func colorOr(name string, fallback core.Color) core.Color {
	if c, ok := core.ParseColor(name); ok {
		return c
	}
	return fallback
}

// loadLevel loads the current level's map and spawns the snake.
func (g *Game) loadLevel() {
	level := GetLevel(g.levelIndex % LevelCount())
	if level == nil {
		return
	}

	g.baseMoveTicks = level.MoveEveryTicks
	if g.mode == ModeEndless {
		// Each full cycle through the levels is one tick per move faster
		cycle := g.levelIndex / LevelCount()
		g.baseMoveTicks = max(1, level.MoveEveryTicks-cycle)
	}
	g.updateSpeed()
	g.moveTicker = 0
	g.foodEaten = 0
	g.levelCleared = false
	g.levelClearTicks = 0

	g.mapHeight = len(level.Layout)
	g.mapWidth = 0
	for _, row := range level.Layout {
		g.mapWidth = max(g.mapWidth, len(row))
	}

	if !g.fitScreen() {
		// Built on the next Resize that fits
		g.body = nil
		return
	}

	g.walls = make(map[Cell]bool)
	for y, row := range level.Layout {
		for x, ch := range row {
			if ch == '#' {
				g.walls[Cell{X: x, Y: y}] = true
			}
		}
	}

	g.initSnake()
	g.spawnFood()
}

// fitScreen centers the map on the screen and reports whether it fits.
func (g *Game) fitScreen() bool {
	requiredW := g.mapWidth + 2
	requiredH := g.mapHeight + hudHeight + 1
	g.tooSmall = g.screenW < requiredW || g.screenH < requiredH
	if g.tooSmall {
		return false
	}

	g.mapOffsetX = (g.screenW - g.mapWidth) / 2
	g.mapOffsetY = hudHeight
	return true
}

// Resize adapts to a new screen size without losing progress. The game
// stays paused while the map does not fit.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.rng == nil {
		return // Not reset yet
	}
	if g.body == nil {
		g.loadLevel()
		return
	}
	g.fitScreen()
}

// initSnake places a fresh body where its three cells and the cell ahead of
// the head are open.
func (g *Game) initSnake() {
	startX := g.mapWidth / 4
	startY := g.mapHeight / 2

	for range 100 {
		if g.startIsClear(startX, startY) {
			break
		}
		startX = 1 + g.rng.Intn(max(1, g.mapWidth/2))
		startY = 1 + g.rng.Intn(max(1, g.mapHeight-2))
	}

	g.body = NewBody(startX, startY)
	g.nextDir = g.body.HeadDirection()
}

func (g *Game) startIsClear(x, y int) bool {
	for i := range 4 {
		if g.blocked(x+i, y) {
			return false
		}
	}
	return true
}

// blocked reports whether (x, y) is a wall or off the map.
func (g *Game) blocked(x, y int) bool {
	if x < 0 || x >= g.mapWidth || y < 0 || y >= g.mapHeight {
		return true
	}
	return g.walls[Cell{X: x, Y: y}]
}

// spawnFood places food at a random empty cell, or off-map if none is left.
func (g *Game) spawnFood() {
	var emptyCells []Cell
	for y := range g.mapHeight {
		for x := range g.mapWidth {
			c := Cell{X: x, Y: y}
			if !g.blocked(x, y) && !g.body.Contains(c) {
				emptyCells = append(emptyCells, c)
			}
		}
	}

	if len(emptyCells) == 0 {
		g.food = Cell{X: -1, Y: -1}
		return
	}

	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && (g.gameOver || g.won) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver && !g.won {
		g.paused = !g.paused
	}

	if g.gameOver || g.won || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= levelClearDelay {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	if g.difficulty.TimeBased() {
		g.updateSpeed()
	}

	var res core.StepResult
	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		res.Moved, res.Ate = g.moveSnake()
	}

	res.State = g.State()
	return res
}

// processInput buffers a direction change, ignoring reversals.
func (g *Game) processInput(input core.InputFrame) {
	newDir := g.nextDir

	switch {
	case input.Has(core.ActionUp):
		newDir = DirUp
	case input.Has(core.ActionDown):
		newDir = DirDown
	case input.Has(core.ActionLeft):
		newDir = DirLeft
	case input.Has(core.ActionRight):
		newDir = DirRight
	}

	if newDir != g.body.HeadDirection().Opposite() {
		g.nextDir = newDir
	}
}

// moveSnake checks the target cell, then moves the body and grows it when
// the head lands on food.
func (g *Game) moveSnake() (moved, ate bool) {
	dir := g.nextDir

	x, y := g.body.NextHead(&dir)
	if g.blocked(x, y) || g.body.OverlapTail(x, y) {
		g.gameOver = true
		return false, false
	}

	g.body.MoveForward(&dir)

	if g.body.Head() != g.food {
		return true, false
	}

	if err := g.body.RestoreTail(); err != nil {
		panic(err) // MoveForward ran just above
	}
	g.score++
	g.foodEaten++
	g.updateSpeed()
	g.spawnFood()
	g.checkLevelCompletion()
	return true, true
}

// updateSpeed recomputes the move interval from the level and difficulty.
func (g *Game) updateSpeed() {
	g.moveEveryTicks = g.difficulty.MoveInterval(
		g.baseMoveTicks,
		g.cfg.Movement.MinMoveEveryTicks,
		g.score,
		g.tick,
	)
}

// checkLevelCompletion checks if the level is complete.
func (g *Game) checkLevelCompletion() {
	switch g.mode {
	case ModeCampaign:
		level := GetLevel(g.levelIndex)
		if level != nil && g.foodEaten >= level.TargetFood {
			g.levelCleared = true
			g.levelClearTicks = 0
		}
	case ModeEndless:
		if g.foodEaten >= endlessFoodStep {
			g.levelIndex++
			g.loadLevel()
		}
	}
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelIndex++
	if g.mode == ModeCampaign && g.levelIndex >= LevelCount() {
		g.levelIndex = LevelCount() - 1
		g.levelCleared = false
		g.won = true
		return
	}
	g.loadLevel()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused,
	}
}

// Body returns the snake body. Callers must not move it.
func (g *Game) Body() *Snake {
	return g.body
}

// Food returns the food cell; X and Y are -1 when the board is full.
func (g *Game) Food() Cell {
	return g.food
}

// BoardSize returns the map dimensions in cells.
func (g *Game) BoardSize() (w, h int) {
	return g.mapWidth, g.mapHeight
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Level: %d\n", g.tick, g.score, g.levelIndex+1)
	if g.body != nil {
		hx, hy := g.body.HeadPosition()
		fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", g.body.Len(), g.body.HeadDirection())
		fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", hx, hy, g.food.X, g.food.Y)
	}
	fmt.Fprintf(&b, "GameOver: %v, Won: %v, Paused: %v\n", g.gameOver, g.won, g.paused)
	return b.String()
}
