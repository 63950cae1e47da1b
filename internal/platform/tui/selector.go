package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Selection is what the user picked in the selector.
type Selection struct {
	GameID     string // snake.IDCampaign or snake.IDEndless
	Level      int    // 1-based start level, 0 = from the beginning
	Scoreboard bool   // User asked for the high scores instead of a game
}

type selectorEntry struct {
	label string
	pick  func(m *SelectorModel)
}

// SelectorModel picks a mode and, optionally, a campaign start level.
type SelectorModel struct {
	entries       []selectorEntry
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keys          KeyMap
	help          help.Model
	selection     *Selection
	quitting      bool
	back          bool
}

// NewSelectorModel creates the selector for a width x height terminal.
func NewSelectorModel(width, height int) SelectorModel {
	m := SelectorModel{
		width:  width,
		height: height,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.entries = []selectorEntry{
		{
			label: fmt.Sprintf("Campaign (%d levels)", snake.LevelCount()),
			pick:  func(m *SelectorModel) { m.selection = &Selection{GameID: snake.IDCampaign} },
		},
		{
			label: "Endless",
			pick:  func(m *SelectorModel) { m.selection = &Selection{GameID: snake.IDEndless} },
		},
		{
			label: "Select Level...",
			pick:  func(m *SelectorModel) { m.inLevelSelect, m.levelCursor = true, 0 },
		},
		{
			label: "High Scores",
			pick:  func(m *SelectorModel) { m.selection = &Selection{Scoreboard: true} },
		},
	}
	return m
}

// Init initializes the model.
func (m SelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inLevelSelect {
			return m.handleLevelKey(m.keys.Menu(msg))
		}
		return m.handleModeKey(m.keys.Menu(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m SelectorModel) handleModeKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = min(m.cursor+1, len(m.entries)-1)
	case MenuActionSelect:
		m.entries[m.cursor].pick(&m)
		if m.selection != nil {
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SelectorModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.levelCursor = max(m.levelCursor-1, 0)
	case MenuActionDown:
		m.levelCursor = min(m.levelCursor+1, snake.LevelCount()-1)
	case MenuActionSelect:
		m.selection = &Selection{GameID: snake.IDCampaign, Level: m.levelCursor + 1}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

var (
	selectorTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	selectorActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectorHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the mode or level list.
func (m SelectorModel) View() string {
	if m.quitting {
		return ""
	}

	title, labels, cursor := "S N A K E", m.labels(), m.cursor
	if m.inLevelSelect {
		title, cursor = "SELECT LEVEL", m.levelCursor
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(selectorTitle.Render(title), len(title), m.width))
	b.WriteString("\n\n")

	for i, label := range labels {
		line := "  " + label
		if i == cursor {
			line = selectorActive.Render("> " + label)
		}
		b.WriteString(centerStyled(line, len(label)+2, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	shortHelp := m.help.ShortHelpView([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Confirm, m.keys.Back, m.keys.Quit})
	b.WriteString(centerStyled(selectorHelp.Render(shortHelp), lipgloss.Width(shortHelp), m.width))
	return b.String()
}

func (m SelectorModel) labels() []string {
	if m.inLevelSelect {
		names := snake.LevelNames()
		labels := make([]string, len(names))
		for i, name := range names {
			labels[i] = fmt.Sprintf("%2d. %s", i+1, name)
		}
		return labels
	}

	labels := make([]string, len(m.entries))
	for i, e := range m.entries {
		labels[i] = e.label
	}
	return labels
}

// Selected returns the selection, or nil if the user quit or backed out.
func (m SelectorModel) Selected() *Selection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m SelectorModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user backed out of the top-level list.
func (m SelectorModel) WantsBack() bool {
	return m.back
}

// centerText left-pads text to center it in width columns.
func centerText(text string, width int) string {
	return centerStyled(text, len(text), width)
}

// centerStyled centers s whose printable width is visible.
func centerStyled(s string, visible, width int) string {
	if visible >= width {
		return s
	}
	return strings.Repeat(" ", (width-visible)/2) + s
}

// RunSelector shows the selector in the current terminal. It returns nil when
// the user quits.
func RunSelector(width, height int) (*Selection, error) {
	p := tea.NewProgram(NewSelectorModel(width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(SelectorModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
