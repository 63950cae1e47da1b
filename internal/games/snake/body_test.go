package snake

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestNewBody(t *testing.T) {
	for _, start := range []Cell{{0, 0}, {5, 5}, {-3, 7}, {100, -2}} {
		s := NewBody(start.X, start.Y)

		x, y := s.HeadPosition()
		if x != start.X+2 || y != start.Y {
			t.Errorf("NewBody(%d, %d) head = (%d, %d), expected (%d, %d)", start.X, start.Y, x, y, start.X+2, start.Y)
		}
		if s.HeadDirection() != DirRight {
			t.Errorf("NewBody(%d, %d) direction = %v, expected right", start.X, start.Y, s.HeadDirection())
		}
		if s.Len() != 3 {
			t.Errorf("NewBody(%d, %d) len = %d, expected 3", start.X, start.Y, s.Len())
		}
		if _, ok := s.LastRemoved(); ok {
			t.Error("New body should have no removed tail")
		}
	}
}

func TestMoveForwardKeepsLength(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirRight, 1, 0},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirUp, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			s := NewBody(10, 10)
			if tc.dir != DirRight {
				s.MoveForward(tc.dir.Ptr())
			}

			for range 20 {
				hx, hy := s.HeadPosition()
				s.MoveForward(nil)

				nx, ny := s.HeadPosition()
				if nx != hx+tc.dx || ny != hy+tc.dy {
					t.Fatalf("Head moved (%d, %d) -> (%d, %d), expected step (%d, %d)", hx, hy, nx, ny, tc.dx, tc.dy)
				}
				if s.Len() != 3 {
					t.Fatalf("Len() = %d after move, expected 3", s.Len())
				}
			}
		})
	}
}

func TestNextHeadIsPure(t *testing.T) {
	s := NewBody(5, 5)
	before := s.Cells()

	for range 5 {
		if x, y := s.NextHead(nil); x != 8 || y != 5 {
			t.Errorf("NextHead(nil) = (%d, %d), expected (8, 5)", x, y)
		}
		if x, y := s.NextHead(DirDown.Ptr()); x != 7 || y != 6 {
			t.Errorf("NextHead(down) = (%d, %d), expected (7, 6)", x, y)
		}
		if x, y := s.NextHead(DirLeft.Ptr()); x != 6 || y != 5 {
			t.Errorf("NextHead(left) = (%d, %d), expected (6, 5)", x, y)
		}
	}

	if !reflect.DeepEqual(s.Cells(), before) {
		t.Errorf("NextHead changed the body: %v -> %v", before, s.Cells())
	}
	if s.HeadDirection() != DirRight {
		t.Errorf("NextHead changed the heading to %v", s.HeadDirection())
	}
}

func TestRestoreTailGrowsByRemovedCell(t *testing.T) {
	s := NewBody(0, 0)
	tailBefore := s.Tail()

	s.MoveForward(DirDown.Ptr())
	removed, ok := s.LastRemoved()
	if !ok || removed != tailBefore {
		t.Fatalf("LastRemoved() = (%v, %v), expected (%v, true)", removed, ok, tailBefore)
	}

	if err := s.RestoreTail(); err != nil {
		t.Fatalf("RestoreTail() failed: %v", err)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d after restore, expected 4", s.Len())
	}
	if s.Tail() != removed {
		t.Errorf("Tail() = %v, expected restored cell %v", s.Tail(), removed)
	}
}

func TestRestoreTailBeforeMove(t *testing.T) {
	s := NewBody(3, 3)

	err := s.RestoreTail()
	if !errors.Is(err, ErrNothingToRestore) {
		t.Fatalf("RestoreTail() before any move = %v, expected ErrNothingToRestore", err)
	}
	if s.Len() != 3 {
		t.Errorf("Failed RestoreTail changed length to %d", s.Len())
	}
}

func TestRestoreTailUsesLatestRemoval(t *testing.T) {
	s := NewBody(5, 5)
	s.MoveForward(nil)         // drops (5,5)
	s.MoveForward(DirUp.Ptr()) // drops (6,5)
	s.MoveForward(DirUp.Ptr()) // drops (7,5)

	if err := s.RestoreTail(); err != nil {
		t.Fatal(err)
	}
	if s.Tail() != (Cell{X: 7, Y: 5}) {
		t.Errorf("Restored %v, expected most recent removal (7,5)", s.Tail())
	}
}

func TestOverlapTail(t *testing.T) {
	s := NewBody(5, 5)
	s.MoveForward(DirDown.Ptr())
	if err := s.RestoreTail(); err != nil {
		t.Fatal(err)
	}
	// Body: (7,6) (7,5) (6,5) (5,5)

	cells := s.Cells()
	last := cells[len(cells)-1]
	if s.OverlapTail(last.X, last.Y) {
		t.Errorf("OverlapTail(%d, %d) on the last cell should be false", last.X, last.Y)
	}
	for _, c := range cells[:len(cells)-1] {
		if !s.OverlapTail(c.X, c.Y) {
			t.Errorf("OverlapTail(%d, %d) on a body cell should be true", c.X, c.Y)
		}
	}
	if s.OverlapTail(0, 0) {
		t.Error("OverlapTail on an empty cell should be false")
	}
}

func TestBodyScenario(t *testing.T) {
	s := NewBody(5, 5)
	assertCells(t, s, []Cell{{7, 5}, {6, 5}, {5, 5}})

	s.MoveForward(nil)
	assertCells(t, s, []Cell{{8, 5}, {7, 5}, {6, 5}})
	if removed, _ := s.LastRemoved(); removed != (Cell{X: 5, Y: 5}) {
		t.Errorf("LastRemoved() = %v, expected (5,5)", removed)
	}

	s.MoveForward(DirUp.Ptr())
	assertCells(t, s, []Cell{{8, 4}, {8, 5}, {7, 5}})
	if s.HeadDirection() != DirUp {
		t.Errorf("HeadDirection() = %v, expected up", s.HeadDirection())
	}

	if err := s.RestoreTail(); err != nil {
		t.Fatal(err)
	}
	assertCells(t, s, []Cell{{8, 4}, {8, 5}, {7, 5}, {6, 5}})
}

func TestMoveForwardAllowsReversal(t *testing.T) {
	// Reversal is the caller's job to prevent; the body just obeys.
	s := NewBody(5, 5)
	s.MoveForward(DirLeft.Ptr())

	if s.HeadDirection() != DirLeft {
		t.Errorf("HeadDirection() = %v, expected left", s.HeadDirection())
	}
	if x, y := s.HeadPosition(); x != 6 || y != 5 {
		t.Errorf("Head = (%d, %d), expected (6, 5)", x, y)
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, expected %v", d, got, want)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("%v.Opposite().Opposite() should round-trip", d)
		}
	}
}

type recordingCanvas struct {
	cells  []Cell
	colors []core.Color
}

func (c *recordingCanvas) FillCell(x, y int, col core.Color) {
	c.cells = append(c.cells, Cell{X: x, Y: y})
	c.colors = append(c.colors, col)
}

func TestDraw(t *testing.T) {
	s := NewBody(1, 2)
	canvas := &recordingCanvas{}

	s.Draw(canvas, core.ColorBrightGreen)

	if !reflect.DeepEqual(canvas.cells, s.Cells()) {
		t.Errorf("Draw filled %v, expected %v", canvas.cells, s.Cells())
	}
	for i, col := range canvas.colors {
		if col != core.ColorBrightGreen {
			t.Errorf("Cell %d drawn in %v, expected bright green", i, col)
		}
	}
}

func TestHeadPositionEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("HeadPosition() on an empty body should panic")
		}
	}()
	var s Snake
	s.HeadPosition()
}

func assertCells(t *testing.T, s *Snake, want []Cell) {
	t.Helper()
	if got := s.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("body = %v, expected %v", got, want)
	}
}
