package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/raster"
)

var (
	flagTicks      int
	flagOut        string
	flagBlock      int
	flagRenderMode string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run the autopilot headless and save the board as PNG",
	Long: `Play a game with the autopilot, without a terminal, for a number of
ticks or until it dies, then save the final board as a PNG image.

Examples:
  snake render
  snake render --ticks 5000 --seed 42 --out run.png
  snake render --mode endless --block 12`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVar(&flagTicks, "ticks", 2000, "Maximum simulation ticks")
	renderCmd.Flags().StringVar(&flagOut, "out", "snake.png", "Output PNG path")
	renderCmd.Flags().IntVar(&flagBlock, "block", 0, "Pixels per cell (default: from config)")
	renderCmd.Flags().StringVar(&flagRenderMode, "mode", "campaign", "Game mode: campaign or endless")
}

// autopilotResult summarizes a headless run.
type autopilotResult struct {
	Ticks int
	Score int
	Over  bool
}

// runAutopilot steps g with its own autopilot for at most maxTicks ticks.
func runAutopilot(g *snake.Game, maxTicks int) autopilotResult {
	input := core.NewInputFrame()
	var res autopilotResult

	for res.Ticks < maxTicks {
		input.Clear()
		if a := g.AutopilotAction(); a != core.ActionNone {
			input.Set(a)
		}

		state := g.Step(input).State
		res.Ticks++
		res.Score = state.Score
		if state.GameOver {
			res.Over = true
			break
		}
	}
	return res
}

func runRender(cmd *cobra.Command, _ []string) error {
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
	gameID, err := modeGameID(flagRenderMode)
	if err != nil {
		return err
	}

	g := snake.New()
	if gameID == snake.IDEndless {
		g = snake.NewEndless()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})

	res := runAutopilot(g, flagTicks)
	logger.Debug("autopilot finished", "ticks", res.Ticks, "score", res.Score, "over", res.Over)

	opts := raster.OptionsFromConfig(loadConfig().Raster)
	if flagBlock > 0 {
		opts.BlockSize = flagBlock
	}
	if err := raster.RenderBoard(g, opts).SavePNG(flagOut); err != nil {
		return err
	}

	status := "still alive"
	if res.Over {
		status = "game over"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s after %d ticks, score %d (seed %d), saved %s\n",
		status, res.Ticks, res.Score, seed, flagOut)
	return nil
}
