// snake plays Snake in the terminal, locally or over SSH.
//
// Usage:
//
//	snake list               - List game modes
//	snake play               - Pick a mode and play
//	snake scores             - Show high scores
//	snake serve              - Start SSH server for remote play
//	snake render             - Run the autopilot headless and save a PNG
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.snake/scores.db)
//	--config <path>       - Custom snake.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger is set up by the root command before any subcommand runs.
var (
	logger    = log.New(io.Discard)
	logCloser = func() error { return nil }
)

func main() {
	err := rootCmd.Execute()
	logCloser()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake in your terminal",
	Long: `Snake is a terminal Snake game with a level campaign, an endless
mode, persistent high scores and an SSH server for remote play.

Examples:
  snake play
  snake play --mode endless --difficulty hard
  snake play --mode campaign --level 3
  snake scores --mode endless
  snake serve --ssh :2222
  snake render --ticks 3000 --out board.png`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play logs nowhere without it)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

// setup validates the shared flags, builds the logger and hands the game
// settings to the snake package.
func setup(cmd *cobra.Command, _ []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	if _, err := config.LoadSnake(flagConfig); err != nil {
		return err
	}
	snake.SetConfigPath(flagConfig)
	snake.SetDifficultyPreset(string(preset))

	// The TUI owns the terminal, so interactive play only logs to a file
	var w io.Writer = os.Stderr
	if cmd.Name() == playCmd.Name() {
		w = io.Discard
	}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
		logCloser = f.Close
	}

	l, err := newLogger(w, flagLogLevel)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "snake",
	}), nil
}

// loadConfig returns the effective config for commands that read it directly.
func loadConfig() config.SnakeConfig {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		// Already validated in setup
		cfg = config.DefaultSnakeConfig()
	}
	return cfg
}
