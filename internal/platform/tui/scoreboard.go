package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const maxScores = 100 // Rows loaded per mode

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMode, k.PrevMode},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
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

// ScoreboardModel shows the best runs of each mode, one tab per mode.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	current   int
	store     *storage.Store
	runs      []storage.Run
	stats     *storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard over every registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Length", Width: 7},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 13},
	}
	// Give spare width to the player column
	if spare := m.width - 8 - 62; spare > 0 {
		columns[4].Width += min(spare, 12)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches runs and stats for the current mode.
func (m *ScoreboardModel) load() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.current].ID
		m.runs, m.loadErr = m.store.TopRuns(id, maxScores)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GameStats(id)
		}
	}
	m.updateRows()
}

func (m *ScoreboardModel) updateRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Length),
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.modes)) % len(m.modes)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.switchMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.switchMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	scoreTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	scoreTab       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	scoreActiveTab = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("22")).Padding(0, 1)
	scoreDim       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	scoreBox       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(centerStyled(scoreTitle.Render("HIGH SCORES"), len("HIGH SCORES"), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.current {
			tabs[i] = scoreActiveTab.Render(g.Title)
		} else {
			tabs[i] = scoreTab.Render(g.Title)
		}
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	b.WriteString(centerStyled(tabLine, lipgloss.Width(tabLine), m.width))
	b.WriteString("\n\n")

	box := scoreBox.Render(m.tableContent())
	for _, line := range strings.Split(box, "\n") {
		b.WriteString(centerStyled(line, lipgloss.Width(line), m.width))
		b.WriteString("\n")
	}

	if summary := m.summary(); summary != "" {
		b.WriteString(centerStyled(scoreDim.Render(summary), len(summary), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(scoreDim.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tableContent() string {
	switch {
	case m.store == nil:
		return scoreDim.Italic(true).Padding(1, 2).Render("Score storage is unavailable.")
	case m.loadErr != nil:
		return scoreDim.Italic(true).Padding(1, 2).Render("Could not load scores:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return scoreDim.Italic(true).Padding(1, 2).Render("No runs recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  avg %.1f  best level %d  longest snake %d",
		m.stats.Runs, m.stats.AvgScore, m.stats.BestLevel, m.stats.LongestSnake)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
