// Package canvas implements rain.Surface over a terminal cell buffer and an
// RGBA pixel image.
package canvas

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/width"

	"github.com/fchimpan/matrix-rain/internal/rain"
)

// fadeFloor is the minimum per-channel distance to the background under
// which a faded glyph's cell is cleared.
const fadeFloor = 10

type Cell struct {
	Glyph string
	Color rain.Color
}

// Cells is a terminal grid where one cell stands for scale x scale virtual
// pixels. Glyphs keep their color until overlays fade them into the
// background, mimicking a canvas that is never fully cleared.
type Cells struct {
	scale int
	cols  int
	rows  int
	cells []Cell // flat: y*cols + x
	font  int
}

var (
	_ rain.Surface = (*Cells)(nil)
	_ rain.Resizer = (*Cells)(nil)
)

func NewCells(scale int) *Cells {
	if scale <= 0 {
		scale = 1
	}
	return &Cells{scale: scale}
}

func (c *Cells) Scale() int { return c.scale }

// Dims returns the grid size in terminal cells.
func (c *Cells) Dims() (cols, rows int) { return c.cols, c.rows }

// PixelSize returns the virtual pixel size of a cols x rows terminal area.
func (c *Cells) PixelSize(cols, rows int) (w, h int) {
	return max(cols, 0) * c.scale, max(rows, 0) * c.scale
}

// Resize reallocates the grid for a w x h virtual pixel surface. Contents are
// dropped, like a canvas whose dimensions change.
func (c *Cells) Resize(w, h int) {
	cols := max(w, 0) / c.scale
	rows := max(h, 0) / c.scale
	c.cols = cols
	c.rows = rows
	n := cols * rows
	if cap(c.cells) >= n {
		c.cells = c.cells[:n]
		clear(c.cells)
		return
	}
	c.cells = make([]Cell, n)
}

// At returns the cell at terminal coordinates (x, y).
func (c *Cells) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return Cell{}, false
	}
	cell := c.cells[y*c.cols+x]
	return cell, cell.Glyph != ""
}

// Live counts cells currently holding a glyph.
func (c *Cells) Live() int {
	n := 0
	for i := range c.cells {
		if c.cells[i].Glyph != "" {
			n++
		}
	}
	return n
}

func (c *Cells) FillRect(x, y, w, h int, col rain.Color, alpha float64) {
	x0, y0 := max(x/c.scale, 0), max(y/c.scale, 0)
	x1 := min((x+w+c.scale-1)/c.scale, c.cols)
	y1 := min((y+h+c.scale-1)/c.scale, c.rows)
	// Rounding stalls a blend once the remaining distance times alpha drops
	// under half a step, so the clear threshold grows as alpha shrinks.
	floor := fadeFloor
	if alpha > 0 {
		floor = max(floor, int(math.Ceil(0.5/alpha)))
	}
	for cy := y0; cy < y1; cy++ {
		row := c.cells[cy*c.cols : (cy+1)*c.cols]
		for cx := x0; cx < x1; cx++ {
			cell := &row[cx]
			if cell.Glyph == "" {
				continue
			}
			cell.Color = cell.Color.Blend(col, alpha)
			if near(cell.Color, col, floor) {
				*cell = Cell{}
			}
		}
	}
}

func (c *Cells) SetFont(size int) { c.font = size }

// Font reports the size passed to the last SetFont.
func (c *Cells) Font() int { return c.font }

// DrawText places the first glyph of s in the cell whose bottom edge is the
// baseline y. Wide glyphs are folded to their narrow forms so every cell
// stays one terminal column.
func (c *Cells) DrawText(s string, x, y int, col rain.Color) {
	if s == "" {
		return
	}
	cx := x / c.scale
	cy := y/c.scale - 1
	if cx < 0 || cy < 0 || cx >= c.cols || cy >= c.rows {
		return
	}
	c.cells[cy*c.cols+cx] = Cell{Glyph: narrow(s), Color: col}
}

func narrow(s string) string {
	if lipgloss.Width(s) <= 1 {
		return s
	}
	n := width.Narrow.String(s)
	if lipgloss.Width(n) <= 1 {
		return n
	}
	return "?"
}

func near(a, b rain.Color, floor int) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= floor && d(a.G, b.G) <= floor && d(a.B, b.B) <= floor
}
