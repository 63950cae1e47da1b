package snake

import (
	"errors"

	"github.com/gammazero/deque"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrNothingToRestore is returned by RestoreTail when the snake has not
// moved yet, so there is no removed tail cell to put back.
var ErrNothingToRestore = errors.New("snake: no removed tail cell to restore")

// Cell is one grid square.
type Cell struct {
	X, Y int
}

// Canvas is a drawing surface that can fill a single grid cell.
// Implementations scale grid coordinates to their own space.
type Canvas interface {
	FillCell(x, y int, c core.Color)
}

// Snake is the body of the snake: an ordered run of cells from head to tail,
// a heading, and the last tail cell dropped by MoveForward.
//
// Snake does not know about walls, food or score. Callers check NextHead
// against the world and OverlapTail before moving, and call RestoreTail to
// grow.
type Snake struct {
	direction Direction
	body      deque.Deque[Cell] // front = head, back = tail

	lastRemoved    Cell
	hasLastRemoved bool
}

// NewBody creates a three-cell snake lying horizontally with its tail at
// (x, y) and its head at (x+2, y), heading right.
func NewBody(x, y int) *Snake {
	s := &Snake{direction: DirRight}
	s.body.PushBack(Cell{X: x + 2, Y: y})
	s.body.PushBack(Cell{X: x + 1, Y: y})
	s.body.PushBack(Cell{X: x, Y: y})
	return s
}

// HeadPosition returns the coordinates of the head cell.
// Panics if the body is empty, which NewBody never produces.
func (s *Snake) HeadPosition() (int, int) {
	if s.body.Len() == 0 {
		panic("snake: empty body")
	}
	head := s.body.Front()
	return head.X, head.Y
}

// Head returns the head cell.
func (s *Snake) Head() Cell {
	x, y := s.HeadPosition()
	return Cell{X: x, Y: y}
}

// HeadDirection returns the current heading.
func (s *Snake) HeadDirection() Direction {
	return s.direction
}

// NextHead returns where the head would be after one move in dir, or in the
// current heading when dir is nil. It does not change the snake.
func (s *Snake) NextHead(dir *Direction) (int, int) {
	moving := s.direction
	if dir != nil {
		moving = *dir
	}

	x, y := s.HeadPosition()
	dx, dy := moving.Delta()
	return x + dx, y + dy
}

// MoveForward advances the snake by one cell. A non-nil dir replaces the
// heading first; no reversal check is done here. The dropped tail cell is
// remembered for RestoreTail.
func (s *Snake) MoveForward(dir *Direction) {
	if dir != nil {
		s.direction = *dir
	}

	x, y := s.NextHead(nil)
	s.body.PushFront(Cell{X: x, Y: y})

	s.lastRemoved = s.body.PopBack()
	s.hasLastRemoved = true
}

// RestoreTail appends the most recently removed tail cell, growing the snake
// by one. It returns ErrNothingToRestore if MoveForward has never run.
func (s *Snake) RestoreTail() error {
	if !s.hasLastRemoved {
		return ErrNothingToRestore
	}
	s.body.PushBack(s.lastRemoved)
	return nil
}

// OverlapTail reports whether (x, y) is on the body, not counting the last
// cell, which moves away on the next step.
func (s *Snake) OverlapTail(x, y int) bool {
	for i := range s.body.Len() - 1 {
		c := s.body.At(i)
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

// Contains reports whether any body cell, tail included, is at c.
func (s *Snake) Contains(c Cell) bool {
	for i := range s.body.Len() {
		if s.body.At(i) == c {
			return true
		}
	}
	return false
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return s.body.Len()
}

// Tail returns the last body cell.
func (s *Snake) Tail() Cell {
	return s.body.Back()
}

// LastRemoved returns the tail cell dropped by the latest MoveForward.
func (s *Snake) LastRemoved() (Cell, bool) {
	return s.lastRemoved, s.hasLastRemoved
}

// Cells returns a copy of the body from head to tail.
func (s *Snake) Cells() []Cell {
	cells := make([]Cell, s.body.Len())
	for i := range cells {
		cells[i] = s.body.At(i)
	}
	return cells
}

// Draw fills one canvas cell per body cell.
func (s *Snake) Draw(dst Canvas, c core.Color) {
	for i := range s.body.Len() {
		cell := s.body.At(i)
		dst.FillCell(cell.X, cell.Y, c)
	}
}
