package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/raster"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options carries what a game model needs besides the game itself.
type Options struct {
	Store         *storage.Store    // Optional; scores are not saved when nil
	Logger        *log.Logger       // Optional; discards when nil
	Player        string            // Recorded with saved runs
	ScreenshotDir string            // Defaults to ~/.snake/screenshots
	Raster        raster.Options    // PNG screenshot layout
	NoScreenshots bool              // Ignore the screenshot key
	OnRecord      func(storage.Run) // Called when a saved run beats the previous best
}

// resizable games adapt to a new screen size without a Reset.
type resizable interface {
	Resize(w, h int)
}

// GameModel runs one game in Bubble Tea and reports whether the user wants
// to leave it.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	tickLoop   uint64
	exitOnBack bool // Quit the program on back; set when not inside a session
	autopilot  bool
	status     string // One-line notice, e.g. where a screenshot went
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game. A zero seed picks one from the clock.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		tickLoop:   nextTickLoop(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.tickLoop, m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.Loop != m.tickLoop {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Autopilot):
		m.autopilot = !m.autopilot
		return m, nil
	case key.Matches(msg, m.keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.autopilot {
		if ap, ok := m.game.(interface{ AutopilotAction() core.Action }); ok {
			if a := ap.AutopilotAction(); a != core.ActionNone {
				m.inputFrame.Set(a)
			}
		}
	}

	wasOver := m.gameState.GameOver
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if wasOver && !m.gameState.GameOver {
		// Restarted
		m.scoreSaved = false
		m.status = ""
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	return m, tickCmd(m.tickLoop, m.config.TickRate)
}

// saveRun stores the finished run. Failures are logged; the game goes on.
func (m *GameModel) saveRun() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}

	run := storage.Run{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Score:  m.gameState.Score,
	}
	if s, ok := m.game.(interface{ Snapshot() snake.Snapshot }); ok {
		snap := s.Snapshot()
		run.Level = snap.Level
		run.Length = len(snap.Body)
		run.Ticks = snap.Tick
	}

	best, bestErr := m.opts.Store.HighScore(run.GameID)
	if bestErr != nil {
		m.logger.Warn("could not read high score", "game", run.GameID, "error", bestErr)
	}

	id, err := m.opts.Store.SaveRun(run)
	if err != nil {
		m.logger.Error("could not save score", "game", run.GameID, "score", run.Score, "error", err)
		return
	}
	run.ID = id
	m.logger.Info("run saved", "game", run.GameID, "player", run.Player, "score", run.Score, "level", run.Level)

	if bestErr == nil && run.Score > best {
		m.status = fmt.Sprintf("New high score: %d", run.Score)
		if m.opts.OnRecord != nil {
			m.opts.OnRecord(run)
		}
	}
}

// saveScreenshot writes the current screen as text and, for games with a
// board, as PNG.
func (m *GameModel) saveScreenshot() {
	if m.opts.NoScreenshots {
		m.status = "Screenshots are disabled"
		return
	}

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Error("screenshot: no home directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".snake", "screenshots")
	}

	paths, err := writeScreenshot(m.game, m.screen, dir, m.opts.Raster, time.Now())
	if err != nil {
		m.logger.Error("screenshot failed", "error", err)
		m.status = "Screenshot failed"
		return
	}
	m.logger.Info("screenshot saved", "files", paths)
	m.status = "Saved " + filepath.Base(paths[0])
}

// writeScreenshot renders game and saves the files, returning their paths.
func writeScreenshot(game registry.Game, screen *core.Screen, dir string, opts raster.Options, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create screenshot dir: %w", err)
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%s", game.ID(), now.Format("20060102_150405")))

	game.Render(screen)
	txt := base + ".txt"
	if err := os.WriteFile(txt, []byte(screen.String()), 0o600); err != nil {
		return nil, fmt.Errorf("write %s: %w", txt, err)
	}
	paths := []string{txt}

	if b, ok := game.(raster.Board); ok {
		img := base + ".png"
		if err := raster.RenderBoard(b, opts).SavePNG(img); err != nil {
			return paths, err
		}
		paths = append(paths, img)
	}
	return paths, nil
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.autopilot {
		m.screen.DrawText(m.screen.Width()-11, 0, "[autopilot]")
	}
	if m.status != "" {
		m.screen.DrawText(0, m.screen.Height()-1, m.status)
	}

	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the current terminal until the user quits or backs out.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	m := NewGameModel(game, cfg, opts)
	m.exitOnBack = true

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
