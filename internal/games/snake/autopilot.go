package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// autopilotOrder is the tie-break order when two moves score the same.
var autopilotOrder = []Direction{DirUp, DirRight, DirDown, DirLeft}

// AutopilotAction picks a steering action for the next move: never reverse,
// never step into a wall or the body, then prefer cells closer to food and
// break near-ties by open neighbours. Returns ActionNone when every move is
// fatal.
func (g *Game) AutopilotAction() core.Action {
	if g.body == nil || g.gameOver || g.won || g.tooSmall {
		return core.ActionNone
	}

	current := g.body.HeadDirection()
	best, bestScore := current, 0
	found := false

	for _, d := range autopilotOrder {
		if d == current.Opposite() {
			continue
		}

		x, y := g.body.NextHead(&d)
		if g.blocked(x, y) || g.body.OverlapTail(x, y) {
			continue
		}

		// One step of distance always outweighs the neighbour count (at most 3)
		score := g.openNeighbours(x, y)
		if g.food.X >= 0 {
			score -= 2 * (core.Abs(g.food.X-x) + core.Abs(g.food.Y-y))
		}

		if !found || score > bestScore {
			best, bestScore, found = d, score, true
		}
	}

	if !found {
		return core.ActionNone
	}
	return directionAction(best)
}

// openNeighbours counts the cells around (x, y) the head could enter
// afterwards, as a cheap dead-end check.
func (g *Game) openNeighbours(x, y int) int {
	n := 0
	for _, d := range autopilotOrder {
		dx, dy := d.Delta()
		nx, ny := x+dx, y+dy
		if !g.blocked(nx, ny) && !g.body.OverlapTail(nx, ny) {
			n++
		}
	}
	return n
}

func directionAction(d Direction) core.Action {
	switch d {
	case DirUp:
		return core.ActionUp
	case DirDown:
		return core.ActionDown
	case DirLeft:
		return core.ActionLeft
	default:
		return core.ActionRight
	}
}
