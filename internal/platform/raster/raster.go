// Package raster draws the snake board into an image, one square block per
// grid cell, and writes it out as PNG.
package raster

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const (
	defaultBlockSize  = 20
	defaultBackground = "#101010"
)

// Options controls how cells are laid out in pixels.
type Options struct {
	BlockSize  int    // Pixel size of one cell
	Background string // Hex color of empty floor
	Grid       bool   // Draw cell grid lines
}

// OptionsFromConfig maps the YAML raster section to Options.
func OptionsFromConfig(cfg config.RasterConfig) Options {
	return Options{
		BlockSize:  cfg.BlockSize,
		Background: cfg.Background,
		Grid:       cfg.Grid,
	}
}

func (o Options) withDefaults() Options {
	if o.BlockSize <= 0 {
		o.BlockSize = defaultBlockSize
	}
	if o.Background == "" {
		o.Background = defaultBackground
	}
	return o
}

// Canvas is a cols x rows cell grid backed by a gg context. It satisfies
// snake.Canvas.
type Canvas struct {
	dc   *gg.Context
	opts Options
	cols int
	rows int
}

// NewCanvas returns a cleared canvas.
func NewCanvas(cols, rows int, opts Options) *Canvas {
	opts = opts.withDefaults()
	cols, rows = max(cols, 1), max(rows, 1)

	c := &Canvas{
		dc:   gg.NewContext(cols*opts.BlockSize, rows*opts.BlockSize),
		opts: opts,
		cols: cols,
		rows: rows,
	}
	c.Clear()
	return c
}

// Size returns the image size in pixels.
func (c *Canvas) Size() (w, h int) {
	return c.dc.Width(), c.dc.Height()
}

// Clear paints the background and, if enabled, the grid.
func (c *Canvas) Clear() {
	c.dc.SetHexColor(c.opts.Background)
	c.dc.Clear()

	if !c.opts.Grid {
		return
	}

	w, h := c.Size()
	bs := c.opts.BlockSize
	c.dc.SetRGB(0.2, 0.2, 0.2)
	c.dc.SetLineWidth(1)
	for x := 0; x <= w; x += bs {
		c.dc.DrawLine(float64(x), 0, float64(x), float64(h))
		c.dc.Stroke()
	}
	for y := 0; y <= h; y += bs {
		c.dc.DrawLine(0, float64(y), float64(w), float64(y))
		c.dc.Stroke()
	}
}

// FillCell fills one grid cell. Cells outside the grid are ignored.
func (c *Canvas) FillCell(x, y int, col core.Color) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}

	bs := float64(c.opts.BlockSize)
	inset := 0.0
	if c.opts.Grid && c.opts.BlockSize > 2 {
		inset = 1
	}

	c.dc.SetRGB(col.RGB())
	c.dc.DrawRectangle(float64(x)*bs+inset, float64(y)*bs+inset, bs-2*inset, bs-2*inset)
	c.dc.Fill()
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to path, creating parent directories.
func (c *Canvas) SavePNG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("raster: create directory: %w", err)
	}
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("raster: save %s: %w", path, err)
	}
	return nil
}

// Board is a game that can paint its map onto cell canvases.
type Board interface {
	BoardSize() (w, h int)
	DrawBoard(walls, food, body, head snake.Canvas)
}

// RenderBoard draws the whole board of b onto a fresh canvas.
func RenderBoard(b Board, opts Options) *Canvas {
	w, h := b.BoardSize()
	c := NewCanvas(w, h, opts)
	b.DrawBoard(c, c, c, c)
	return c
}
