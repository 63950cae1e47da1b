package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// KeyMap holds the bindings shared by the game, selector and scoreboard.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Confirm    key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Autopilot  key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns arrows, WASD and vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d/l", "right"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Autopilot: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "autopilot"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Autopilot, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pause, k.Restart, k.Autopilot, k.Screenshot},
		{k.Back, k.Quit},
	}
}

// Action maps a key press to a game action. Keys handled by the model
// itself (quit, screenshot, autopilot) map to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// Menu maps a key press to a menu action.
func (k KeyMap) Menu(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Confirm), key.Matches(msg, k.Right):
		return MenuActionSelect
	case key.Matches(msg, k.Back), key.Matches(msg, k.Left):
		return MenuActionBack
	}
	return MenuActionNone
}
