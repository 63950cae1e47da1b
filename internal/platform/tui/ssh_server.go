package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/raster"
	"github.com/vovakirdan/tui-snake/internal/presence"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.snake/host_key.
	HostKeyPath string

	// IdleTimeout closes connections with no input for this long.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of each session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    defaultTickRate,
	}
}

// SSHServer serves one snake session per SSH connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	raster raster.Options
	hub    *presence.Hub
	logger *log.Logger
}

// NewSSHServer creates the server. store may be nil, in which case no
// scores are kept. The caller owns store and closes it after Shutdown.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, rasterOpts raster.Options, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("snake-ssh")

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".snake", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		raster: rasterOpts,
		hub:    presence.NewHub(0),
		logger: logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a session model for each SSH connection with a PTY.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "snake needs an interactive terminal (ssh -t)")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	member := s.hub.Join(sess.User())
	go func() {
		<-sess.Context().Done()
		s.hub.Leave(member)
	}()

	opts := Options{
		Store:         s.store,
		Logger:        s.logger.With("user", sess.User()),
		Player:        sess.User(),
		Raster:        s.raster,
		NoScreenshots: true, // Would write to the server's disk
		OnRecord: func(run storage.Run) {
			s.hub.Broadcast(member, recordNotice(run))
		},
	}
	m := NewSessionModel(cfg, opts)
	m.member = member
	m.online = s.hub.Count
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

func recordNotice(run storage.Run) string {
	return fmt.Sprintf("set a new %s record: %d", registry.Title(run.GameID), run.Score)
}

func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"online", s.hub.Count(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT/SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return fmt.Errorf("ssh server: %w", err)
	}

	s.logger.Info("shutting down...", "online", s.hub.Count())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionView int

const (
	viewSelector sessionView = iota
	viewGame
	viewScores
)

// SessionModel is the top-level model of an SSH session: selector, then a
// game or the scoreboard, then back to the selector.
type SessionModel struct {
	config     core.RuntimeConfig
	opts       Options
	view       sessionView
	selector   SelectorModel
	game       GameModel
	scoreboard ScoreboardModel
	member     *presence.Member // Nil outside the SSH server
	online     func() int
	notice     string
	quitting   bool
}

// noticeMsg carries a notice from another player.
type noticeMsg presence.Notice

// waitForNotice blocks until the member receives a notice or leaves.
func waitForNotice(m *presence.Member) tea.Cmd {
	if m == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case n := <-m.Notices():
			return noticeMsg(n)
		case <-m.Done():
			return nil
		}
	}
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		config:   cfg,
		opts:     opts,
		selector: NewSelectorModel(cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.selector.Init(), waitForNotice(m.member))
}

// Update routes messages to the active screen. Sub-models quit their own
// program when run standalone; here their exits switch screens instead.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}
	if n, ok := msg.(noticeMsg); ok {
		m.notice = presence.Notice(n).String()
		if m.view == viewGame {
			m.game.status = m.notice
		}
		return m, waitForNotice(m.member)
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateSelector(msg)
	}
}

func (m SessionModel) updateSelector(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.selector.Update(msg)
	m.selector = next.(SelectorModel)

	if m.selector.IsQuitting() || m.selector.WantsBack() {
		m.quitting = true
		return m, tea.Quit
	}

	sel := m.selector.Selected()
	if sel == nil {
		return m, cmd
	}

	if sel.Scoreboard {
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scoreboard.Init()
	}

	game, err := registry.Create(sel.GameID)
	if err != nil {
		m.opts.Logger.Error("cannot create game", "game", sel.GameID, "error", err)
		return m.toSelector()
	}
	if g, ok := game.(*snake.Game); ok {
		g.SetStartLevel(sel.Level)
	}

	m.config.Seed = time.Now().UnixNano()
	m.game = NewGameModel(game, m.config, m.opts)
	m.view = viewGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toSelector()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		return m.toSelector()
	}
	return m, cmd
}

func (m SessionModel) toSelector() (tea.Model, tea.Cmd) {
	m.view = viewSelector
	m.selector = NewSelectorModel(m.config.ScreenW, m.config.ScreenH)
	return m, m.selector.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scoreboard.View()
	default:
		return m.selector.View() + m.footer()
	}
}

// footer shows who else is online and the latest notice on the selector.
func (m SessionModel) footer() string {
	var b strings.Builder
	if m.online != nil {
		if n := m.online(); n > 1 {
			fmt.Fprintf(&b, "\n%s", centerText(fmt.Sprintf("%d players online", n), m.config.ScreenW))
		}
	}
	if m.notice != "" {
		fmt.Fprintf(&b, "\n%s", centerText(m.notice, m.config.ScreenW))
	}
	return b.String()
}
