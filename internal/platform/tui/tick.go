// Package tui runs the snake game in a terminal with Bubble Tea, locally or
// over SSH through Wish.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 60

// TickMsg is sent to trigger a game simulation tick. A game model only
// handles ticks of its own Loop.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var tickLoops atomic.Uint64

// nextTickLoop returns a fresh tick loop ID.
func nextTickLoop() uint64 {
	return tickLoops.Add(1)
}

// tickCmd schedules the next tick of loop at tickRate per second.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
