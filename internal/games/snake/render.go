package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// screenCanvas draws grid cells onto a text screen at the map offset.
type screenCanvas struct {
	dst    *core.Screen
	ox, oy int
	glyph  rune
}

func (c screenCanvas) FillCell(x, y int, col core.Color) {
	c.dst.SetCell(c.ox+x, c.oy+y, c.glyph, col)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.DrawBoard(
		screenCanvas{dst: dst, ox: g.mapOffsetX, oy: g.mapOffsetY, glyph: '#'},
		screenCanvas{dst: dst, ox: g.mapOffsetX, oy: g.mapOffsetY, glyph: '*'},
		screenCanvas{dst: dst, ox: g.mapOffsetX, oy: g.mapOffsetY, glyph: 'o'},
		screenCanvas{dst: dst, ox: g.mapOffsetX, oy: g.mapOffsetY, glyph: 'O'},
	)

	switch {
	case g.levelCleared:
		levelName := "Level"
		if level := GetLevel(g.levelIndex % LevelCount()); level != nil {
			levelName = level.Name
		}
		g.renderOverlay(dst, fmt.Sprintf("Level %d cleared!", g.levelIndex+1), levelName)
	case g.won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.score))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// DrawBoard draws walls, food, body and head, each onto its own canvas.
// Passing the same canvas four times is fine.
func (g *Game) DrawBoard(walls, food, body, head Canvas) {
	for w := range g.walls {
		walls.FillCell(w.X, w.Y, g.wallColor)
	}

	if g.food.X >= 0 && g.food.Y >= 0 {
		food.FillCell(g.food.X, g.food.Y, g.foodColor)
	}

	if g.body == nil {
		return
	}
	g.body.Draw(body, g.bodyColor)
	hx, hy := g.body.HeadPosition()
	head.FillCell(hx, hy, g.headColor)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	var hud string
	if g.mode == ModeEndless {
		hud = fmt.Sprintf(" Snake (Endless) - Score: %d  Speed: %d", g.score, 7-g.moveEveryTicks)
	} else {
		hud = fmt.Sprintf(" Snake - Score: %d  Level: %d/%d  Food: %d", g.score, g.levelIndex+1, LevelCount(), g.foodEaten)
	}

	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := core.Clamp(max(len(line1), len(line2))+4, 4, dst.Width())
	box := dst.Bounds().Centered(boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
