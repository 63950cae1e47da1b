package snake

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// newTestGame returns a reset game that ignores any real ~/.snake config.
func newTestGame(t *testing.T, endless bool, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g := New()
	if endless {
		g = NewEndless()
	}
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24})
	return g
}

// bodyFrom builds a body with the given heading and cells, head first.
func bodyFrom(dir Direction, cells ...Cell) *Snake {
	s := &Snake{direction: dir}
	for _, c := range cells {
		s.body.PushBack(c)
	}
	return s
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, false, 12345)
	g2 := newTestGame(t, false, 12345)

	input := core.NewInputFrame()
	for i := range 300 {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionDown)
		case 60:
			input.Set(core.ActionLeft)
		case 100:
			input.Set(core.ActionUp)
		}

		g1.Step(input)
		g2.Step(input)
	}

	snap1 := g1.Snapshot()
	snap2 := g2.Snapshot()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("Snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
}

func TestInitialSnake(t *testing.T) {
	g := newTestGame(t, false, 1)

	snap := g.Snapshot()
	if len(snap.Body) != 3 {
		t.Fatalf("Initial body length = %d, expected 3", len(snap.Body))
	}
	if snap.Dir != DirRight {
		t.Errorf("Initial direction = %v, expected right", snap.Dir)
	}
	if snap.HeadX != g.mapWidth/4+2 || snap.HeadY != g.mapHeight/2 {
		t.Errorf("Initial head = (%d, %d), expected (%d, %d)", snap.HeadX, snap.HeadY, g.mapWidth/4+2, g.mapHeight/2)
	}
	if snap.State != StatePlaying {
		t.Errorf("Initial state = %s, expected playing", snap.State)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := newTestGame(t, false, 42)

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)

	if g.nextDir == DirLeft {
		t.Error("Should not allow immediate reversal from Right to Left")
	}

	input.Clear()
	input.Set(core.ActionDown)
	g.Step(input)

	if g.nextDir != DirDown {
		t.Errorf("Expected nextDir to be Down, got %v", g.nextDir)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g := newTestGame(t, false, 999)

	for range 100 {
		g.spawnFood()

		if g.walls[g.food] {
			t.Errorf("Food spawned on wall at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.body.Contains(g.food) {
			t.Errorf("Food spawned on snake at (%d, %d)", g.food.X, g.food.Y)
		}
		if g.food.X < 0 || g.food.X >= g.mapWidth || g.food.Y < 0 || g.food.Y >= g.mapHeight {
			t.Errorf("Food spawned out of bounds at (%d, %d)", g.food.X, g.food.Y)
		}
	}
}

func TestSnakeGrowth(t *testing.T) {
	g := newTestGame(t, false, 222)

	initialLen := g.body.Len()
	tail := g.body.Tail()
	head := g.body.Head()
	g.food = Cell{X: head.X + 1, Y: head.Y}
	g.nextDir = DirRight

	moved, ate := g.moveSnake()
	if !moved || !ate {
		t.Fatalf("moveSnake() = (%v, %v), expected (true, true)", moved, ate)
	}
	if g.body.Len() != initialLen+1 {
		t.Errorf("Snake should grow by 1 after eating food, got %d vs %d", g.body.Len(), initialLen+1)
	}
	if g.body.Tail() != tail {
		t.Errorf("Growth should keep the old tail %v, got %v", tail, g.body.Tail())
	}
	if g.score != 1 {
		t.Errorf("Score should be 1 after eating food, got %d", g.score)
	}
	if g.food == (Cell{X: head.X + 1, Y: head.Y}) {
		t.Error("Food should respawn after being eaten")
	}
}

func TestMoveWithoutFoodKeepsLength(t *testing.T) {
	g := newTestGame(t, false, 5)
	g.food = Cell{X: 1, Y: 1}

	for range 5 {
		moved, ate := g.moveSnake()
		if !moved || ate {
			t.Fatalf("moveSnake() = (%v, %v), expected (true, false)", moved, ate)
		}
	}
	if g.body.Len() != 3 {
		t.Errorf("Length = %d, expected 3", g.body.Len())
	}
}

func TestCollisionDetection(t *testing.T) {
	g := newTestGame(t, false, 789)

	if g.gameOver {
		t.Fatal("Game should not start in game over state")
	}

	g.body = bodyFrom(DirUp, Cell{1, 1}, Cell{2, 1}, Cell{3, 1})
	g.nextDir = DirUp

	if moved, _ := g.moveSnake(); moved {
		t.Error("Snake should not move into a wall")
	}
	if !g.gameOver {
		t.Error("Game should be over after hitting wall")
	}
}

func TestSelfCollision(t *testing.T) {
	g := newTestGame(t, false, 111)

	g.body = bodyFrom(DirUp,
		Cell{5, 5}, // Head
		Cell{5, 6},
		Cell{6, 6},
		Cell{6, 5},
		Cell{6, 4},
	)
	g.nextDir = DirRight

	// Moving right puts the head on (6, 5), which is not the tail
	g.moveSnake()

	if !g.gameOver {
		t.Error("Game should be over after self collision")
	}
}

func TestMoveIntoTailIsLegal(t *testing.T) {
	g := newTestGame(t, false, 111)
	g.food = Cell{X: 20, Y: 12}

	g.body = bodyFrom(DirLeft,
		Cell{5, 5}, // Head
		Cell{6, 5},
		Cell{6, 6},
		Cell{5, 6}, // Tail, vacates on this move
	)
	g.nextDir = DirDown

	g.moveSnake()

	if g.gameOver {
		t.Fatal("Moving into the current tail cell should be legal")
	}
	if head := g.body.Head(); head != (Cell{X: 5, Y: 6}) {
		t.Errorf("Head = %v, expected (5,6)", head)
	}
}

func TestPauseStopsMovement(t *testing.T) {
	g := newTestGame(t, false, 7)

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)

	head := g.body.Head()
	input.Clear()
	for range 60 {
		g.Step(input)
	}

	if g.body.Head() != head {
		t.Errorf("Snake moved while paused: %v -> %v", head, g.body.Head())
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("State = %s, expected paused", g.Snapshot().State)
	}
}

func TestStepMovesOnInterval(t *testing.T) {
	g := newTestGame(t, false, 3)
	SetDifficultyPreset("fixed")
	defer SetDifficultyPreset("")
	g.Reset(core.RuntimeConfig{Seed: 3, ScreenW: 80, ScreenH: 24})
	g.food = Cell{X: 1, Y: 1}

	interval := g.moveEveryTicks
	if interval != GetLevel(0).MoveEveryTicks {
		t.Fatalf("Fixed difficulty interval = %d, expected level interval %d", interval, GetLevel(0).MoveEveryTicks)
	}

	input := core.NewInputFrame()
	moves := 0
	for range interval * 3 {
		if g.Step(input).Moved {
			moves++
		}
	}
	if moves != 3 {
		t.Errorf("Moves in %d ticks = %d, expected 3", interval*3, moves)
	}
}

func TestLevelCompletion(t *testing.T) {
	g := newTestGame(t, false, 123)

	level := GetLevel(0)
	if level == nil {
		t.Fatal("Level 0 not found")
	}

	initialLevel := g.levelIndex
	g.foodEaten = level.TargetFood
	g.checkLevelCompletion()

	if !g.levelCleared {
		t.Error("Level should be cleared after eating TargetFood")
	}

	g.levelClearTicks = levelClearDelay
	g.advanceLevel()

	if g.levelIndex != initialLevel+1 {
		t.Errorf("Expected level %d, got %d", initialLevel+1, g.levelIndex)
	}
	if g.levelCleared {
		t.Error("New level should not start cleared")
	}
}

func TestCampaignWin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.SetStartLevel(LevelCount())
	g.Reset(core.RuntimeConfig{Seed: 9, ScreenW: 80, ScreenH: 24})

	if g.levelIndex != LevelCount()-1 {
		t.Fatalf("Start level = %d, expected last level %d", g.levelIndex, LevelCount()-1)
	}

	g.foodEaten = GetLevel(g.levelIndex).TargetFood
	g.checkLevelCompletion()
	g.advanceLevel()

	if !g.won {
		t.Error("Clearing the last level should win the campaign")
	}
	if !g.State().GameOver {
		t.Error("A won game should report GameOver to the platform")
	}
	if g.Snapshot().State != StateWin {
		t.Errorf("State = %s, expected win", g.Snapshot().State)
	}
}

func TestStartLevelIsConsumed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.SetStartLevel(3)
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	if g.levelIndex != 2 {
		t.Fatalf("levelIndex = %d, expected 2", g.levelIndex)
	}

	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	if g.levelIndex != 0 {
		t.Errorf("Second Reset should start from level 1, got index %d", g.levelIndex)
	}

	e := NewEndless()
	e.SetStartLevel(4)
	e.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 80, ScreenH: 24})
	if e.levelIndex != 0 {
		t.Errorf("Endless should ignore the start level, got index %d", e.levelIndex)
	}
}

func TestEndlessProgression(t *testing.T) {
	g := newTestGame(t, true, 456)

	initialSpeed := g.baseMoveTicks
	initialLevel := g.levelIndex

	g.foodEaten = endlessFoodStep
	g.checkLevelCompletion()

	if g.levelIndex != initialLevel+1 {
		t.Errorf("Expected level %d, got %d after %d food in endless", initialLevel+1, g.levelIndex, endlessFoodStep)
	}

	for range LevelCount() {
		g.foodEaten = endlessFoodStep
		g.checkLevelCompletion()
	}

	if g.baseMoveTicks >= initialSpeed {
		t.Errorf("Expected speed increase (lower move interval), got %d vs initial %d", g.baseMoveTicks, initialSpeed)
	}
}

func TestLevelCount(t *testing.T) {
	if LevelCount() != 6 {
		t.Errorf("Expected 6 levels, got %d", LevelCount())
	}
	if len(LevelNames()) != LevelCount() {
		t.Errorf("LevelNames() has %d entries, expected %d", len(LevelNames()), LevelCount())
	}
	if GetLevel(-1) != nil || GetLevel(LevelCount()) != nil {
		t.Error("GetLevel out of range should return nil")
	}
}

func TestAllLevelsValid(t *testing.T) {
	for i := range LevelCount() {
		level := GetLevel(i)

		if level.ID != i+1 {
			t.Errorf("Level %d has wrong ID: %d", i, level.ID)
		}
		if level.Name == "" {
			t.Errorf("Level %d has empty name", i)
		}
		if level.TargetFood <= 0 {
			t.Errorf("Level %d has invalid TargetFood: %d", i, level.TargetFood)
		}
		if level.MoveEveryTicks <= 0 {
			t.Errorf("Level %d has invalid MoveEveryTicks: %d", i, level.MoveEveryTicks)
		}
		if len(level.Layout) == 0 {
			t.Fatalf("Level %d has empty layout", i)
		}

		width := len(level.Layout[0])
		for y, row := range level.Layout {
			if len(row) != width {
				t.Errorf("Level %d row %d has width %d, expected %d", i, y, len(row), width)
			}
		}

		// Default start cells must be open so the snake never spawns on a wall
		sy := len(level.Layout) / 2
		for x := width / 4; x < width/4+4; x++ {
			if level.Layout[sy][x] == '#' {
				t.Errorf("Level %d start cell (%d, %d) is a wall", i, x, sy)
			}
		}
	}
}

func TestGameIDs(t *testing.T) {
	if New().ID() != "snake" {
		t.Errorf("Campaign ID should be 'snake', got %s", New().ID())
	}
	if NewEndless().ID() != "snake_endless" {
		t.Errorf("Endless ID should be 'snake_endless', got %s", NewEndless().ID())
	}
}

func TestTitles(t *testing.T) {
	if New().Title() != "Snake" {
		t.Errorf("Campaign title should be 'Snake', got %s", New().Title())
	}
	if NewEndless().Title() != "Snake (Endless)" {
		t.Errorf("Endless title should be 'Snake (Endless)', got %s", NewEndless().Title())
	}
}

func TestWindowTooSmall(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if !g.tooSmall {
		t.Error("Game should detect window is too small")
	}

	snap := g.Snapshot()
	if snap.State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", snap.State)
	}

	// Rendering and stepping a too-small game must not panic
	g.Step(core.NewInputFrame())
	g.Render(core.NewScreen(10, 5))
	if g.AutopilotAction() != core.ActionNone {
		t.Error("Autopilot should idle while the window is too small")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, false, 444)

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}

	hx, hy := g.body.HeadPosition()
	head := screen.GetCell(g.mapOffsetX+hx, g.mapOffsetY+hy)
	if head.Rune != 'O' || head.Color != g.headColor {
		t.Errorf("Head cell = %+v, expected 'O' in head color", head)
	}

	tail := g.body.Tail()
	if r := screen.Get(g.mapOffsetX+tail.X, g.mapOffsetY+tail.Y); r != 'o' {
		t.Errorf("Tail cell = %q, expected 'o'", r)
	}
	if r := screen.Get(g.mapOffsetX+g.food.X, g.mapOffsetY+g.food.Y); r != '*' {
		t.Errorf("Food cell = %q, expected '*'", r)
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(t, false, 444)
	g.gameOver = true

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("Game over overlay should be drawn")
	}
}

type cellRecorder struct {
	cells map[Cell]core.Color
}

func (r *cellRecorder) FillCell(x, y int, c core.Color) {
	r.cells[Cell{X: x, Y: y}] = c
}

func TestDrawBoard(t *testing.T) {
	g := newTestGame(t, false, 17)

	walls := &cellRecorder{cells: map[Cell]core.Color{}}
	food := &cellRecorder{cells: map[Cell]core.Color{}}
	body := &cellRecorder{cells: map[Cell]core.Color{}}
	head := &cellRecorder{cells: map[Cell]core.Color{}}
	g.DrawBoard(walls, food, body, head)

	if len(walls.cells) != len(g.walls) {
		t.Errorf("Drew %d walls, expected %d", len(walls.cells), len(g.walls))
	}
	if food.cells[g.food] != g.foodColor {
		t.Error("Food should be drawn in food color")
	}
	if len(body.cells) != g.body.Len() {
		t.Errorf("Drew %d body cells, expected %d", len(body.cells), g.body.Len())
	}
	if len(head.cells) != 1 || head.cells[g.body.Head()] != g.headColor {
		t.Errorf("Head drawn as %v, expected one cell at %v", head.cells, g.body.Head())
	}
}

func TestAutopilotAvoidsWall(t *testing.T) {
	g := newTestGame(t, false, 8)
	g.body = bodyFrom(DirLeft, Cell{1, 5}, Cell{2, 5}, Cell{3, 5})

	action := g.AutopilotAction()
	if action != core.ActionUp && action != core.ActionDown {
		t.Errorf("AutopilotAction() = %v, expected a turn away from the wall", action)
	}
}

func TestAutopilotTrapped(t *testing.T) {
	g := newTestGame(t, false, 8)
	// Corner at (1,1) facing up: wall above and left, body below
	g.body = bodyFrom(DirUp, Cell{1, 1}, Cell{1, 2}, Cell{2, 2}, Cell{2, 1}, Cell{3, 1})

	if action := g.AutopilotAction(); action != core.ActionNone {
		t.Errorf("AutopilotAction() = %v, expected none when trapped", action)
	}
}

func TestAutopilotEats(t *testing.T) {
	g := newTestGame(t, true, 2024)

	input := core.NewInputFrame()
	for range 3000 {
		input.Clear()
		if a := g.AutopilotAction(); a != core.ActionNone {
			input.Set(a)
		}
		g.Step(input)
		if g.gameOver {
			break
		}
	}

	if g.score == 0 {
		t.Errorf("Autopilot should reach food at least once:\n%s", g.DebugState())
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	g := newTestGame(t, false, 31)
	g.score = 3
	head := g.body.Head()

	g.Resize(120, 40)

	if g.tooSmall {
		t.Fatal("Larger screen should fit")
	}
	if g.score != 3 || g.body.Head() != head {
		t.Error("Resize should not reset the game")
	}
	if g.mapOffsetX != (120-g.mapWidth)/2 {
		t.Errorf("mapOffsetX = %d, expected %d", g.mapOffsetX, (120-g.mapWidth)/2)
	}

	g.Resize(20, 10)
	if !g.tooSmall {
		t.Error("Shrunk screen should pause the game")
	}
	if g.Step(core.NewInputFrame()).Moved {
		t.Error("Snake should not move while the window is too small")
	}
}

func TestResizeBuildsLevelOnceItFits(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 5, ScreenW: 10, ScreenH: 5})
	if g.body != nil {
		t.Fatal("Too-small level should not place a snake")
	}

	g.Resize(80, 24)

	if g.tooSmall {
		t.Fatal("Game should fit after resize")
	}
	if g.body == nil || g.body.Len() != 3 {
		t.Fatal("Snake should be placed once the level fits")
	}
	if g.walls[g.food] || g.body.Contains(g.food) {
		t.Errorf("Food at invalid cell %v", g.food)
	}
}

func TestResizeBeforeReset(t *testing.T) {
	g := New()
	g.Resize(80, 24) // Must not panic
	if g.body != nil {
		t.Error("Resize before Reset should not build a level")
	}
}

func TestTimeProgressionSpeedsUpWithoutFood(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte(`movement:
  min_move_every_ticks: 1
difficulty:
  enabled: true
  initial_level: 0.0
  progression:
    type: time
    max_at: 10
  scaling:
    speed_multiplier: 5.0
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	SetDifficultyPreset("")
	defer SetConfigPath("")

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 9, ScreenW: 80, ScreenH: 24})
	g.food = Cell{X: -1, Y: -1}

	if g.moveEveryTicks != GetLevel(0).MoveEveryTicks {
		t.Fatalf("interval at start = %d, expected level interval %d", g.moveEveryTicks, GetLevel(0).MoveEveryTicks)
	}

	// Past max_at the speed is 6x, so the interval hits the minimum
	g.tick = 29
	g.Step(core.NewInputFrame())

	if g.score != 0 {
		t.Fatalf("score = %d, the snake must not have eaten", g.score)
	}
	if g.moveEveryTicks != 1 {
		t.Errorf("interval after %d ticks = %d, expected 1", g.tick, g.moveEveryTicks)
	}
}

func TestOverlayFitsNarrowScreen(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 12, ScreenH: 7})
	if !g.tooSmall {
		t.Fatal("12x7 should be too small for any level")
	}

	screen := core.NewScreen(12, 7)
	g.Render(screen)

	top := []rune(screen.Row(1))
	if top[0] != '┌' || top[len(top)-1] != '┐' {
		t.Errorf("overlay top row = %q, expected a box spanning the screen", string(top))
	}
}
