package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - steer up
	ActionDown           // S, J, Down arrow - steer down
	ActionLeft           // A, H, Left arrow - steer left
	ActionRight          // D, L, Right arrow - steer right
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
