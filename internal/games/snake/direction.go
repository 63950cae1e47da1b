package snake

// Direction is the snake's heading on the grid.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the reverse heading. Collaborators use it to reject
// instant U-turns before calling MoveForward.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the one-cell offset for the heading. Screen coordinates:
// y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Ptr returns a pointer to a copy of d, for the optional direction
// arguments of NextHead and MoveForward.
func (d Direction) Ptr() *Direction {
	return &d
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
