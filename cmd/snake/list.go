package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and campaign levels",
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	games := registry.List()
	maxIDLen := len("ID")
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintln(out, "Modes:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Campaign levels:")
	fmt.Fprintln(out)
	for i := range snake.LevelCount() {
		l := snake.GetLevel(i)
		fmt.Fprintf(out, "  %2d. %-14s  food %2d  speed %d\n", l.ID, l.Name, l.TargetFood, l.MoveEveryTicks)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'snake play --mode <campaign|endless>' to play.")
}
