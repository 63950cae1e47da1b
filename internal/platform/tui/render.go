package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ansiCodes maps core colors to 256-color palette indices.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := colorStyles[c]; ok {
		return s
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string, emitting one
// style per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color

			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
