package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/raster"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagMode  string
	flagLevel int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Snake",
	Long: `Start a game. Without --mode a selector lets you pick the mode, a
campaign start level, or the high score table.

Controls:
  Arrows/WASD/HJKL - Steer
  P                - Pause
  R                - Restart (after game over)
  Tab              - Toggle autopilot
  Ctrl+S           - Screenshot (text + PNG) to ~/.snake/screenshots
  Esc/B            - Back (when paused or over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, one tick faster minimum
  fixed  - No progression, stays at config's initial level

Examples:
  snake play
  snake play --mode endless
  snake play --mode campaign --level 4 --difficulty hard
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: campaign or endless (default: show selector)")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign start level (1-based)")
}

// modeGameID maps a --mode value to a registered game ID.
func modeGameID(mode string) (string, error) {
	switch mode {
	case string(snake.ModeCampaign), snake.IDCampaign:
		return snake.IDCampaign, nil
	case string(snake.ModeEndless), snake.IDEndless:
		return snake.IDEndless, nil
	}
	return "", fmt.Errorf("unknown mode %q (want campaign or endless)", mode)
}

func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagLevel < 0 || flagLevel > snake.LevelCount() {
		return fmt.Errorf("--level must be between 1 and %d", snake.LevelCount())
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("playing without scores", "error", err)
	} else {
		defer store.Close()
	}

	opts := tui.Options{
		Store:  store,
		Logger: logger,
		Player: storage.LocalPlayer,
		Raster: raster.OptionsFromConfig(loadConfig().Raster),
	}

	if flagMode != "" {
		gameID, err := modeGameID(flagMode)
		if err != nil {
			return err
		}
		return playGame(gameID, flagLevel, cfg, opts)
	}

	for {
		sel, err := tui.RunSelector(cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return fmt.Errorf("selector: %w", err)
		}
		if sel == nil {
			return nil
		}

		if sel.Scoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return fmt.Errorf("scoreboard: %w", err)
			}
			if !goBack {
				return nil
			}
			continue
		}

		return playGame(sel.GameID, sel.Level, cfg, opts)
	}
}

func playGame(gameID string, level int, cfg core.RuntimeConfig, opts tui.Options) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if g, ok := game.(*snake.Game); ok && level > 0 {
		g.SetStartLevel(level)
	}

	logger.Info("starting game", "game", gameID, "level", level, "seed", cfg.Seed)
	if err := tui.Run(game, cfg, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
