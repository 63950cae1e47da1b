package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorNames = map[string]Color{
	"default":        ColorDefault,
	"red":            ColorRed,
	"green":          ColorGreen,
	"yellow":         ColorYellow,
	"blue":           ColorBlue,
	"magenta":        ColorMagenta,
	"cyan":           ColorCyan,
	"white":          ColorWhite,
	"bright_red":     ColorBrightRed,
	"bright_green":   ColorBrightGreen,
	"bright_yellow":  ColorBrightYellow,
	"bright_blue":    ColorBrightBlue,
	"bright_magenta": ColorBrightMagenta,
	"bright_cyan":    ColorBrightCyan,
	"bright_white":   ColorBrightWhite,
	"orange":         ColorOrange,
	"gray":           ColorGray,
}

// ParseColor maps a config color name (e.g. "bright_green") to a Color.
// Unknown names return ColorDefault and false.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// RGB returns the color as float components in [0, 1], matching the
// standard xterm palette. Used by pixel renderers.
func (c Color) RGB() (r, g, b float64) {
	switch c {
	case ColorRed:
		return 0.80, 0.00, 0.00
	case ColorGreen:
		return 0.00, 0.80, 0.00
	case ColorYellow:
		return 0.80, 0.80, 0.00
	case ColorBlue:
		return 0.00, 0.00, 0.93
	case ColorMagenta:
		return 0.80, 0.00, 0.80
	case ColorCyan:
		return 0.00, 0.80, 0.80
	case ColorWhite:
		return 0.90, 0.90, 0.90
	case ColorBrightRed:
		return 1.00, 0.00, 0.00
	case ColorBrightGreen:
		return 0.00, 1.00, 0.00
	case ColorBrightYellow:
		return 1.00, 1.00, 0.00
	case ColorBrightBlue:
		return 0.36, 0.36, 1.00
	case ColorBrightMagenta:
		return 1.00, 0.00, 1.00
	case ColorBrightCyan:
		return 0.00, 1.00, 1.00
	case ColorBrightWhite:
		return 1.00, 1.00, 1.00
	case ColorOrange:
		return 1.00, 0.53, 0.00
	case ColorGray:
		return 0.54, 0.54, 0.54
	default:
		return 0.75, 0.75, 0.75
	}
}
