package tui

import (
	"github.com/charmbracelet/lipgloss"
)

type canvasBuf struct {
	w     int
	h     int
	cells []string // flat: y*w + x
}

func (c *canvasBuf) Reset() {
	c.w = 0
	c.h = 0
	c.cells = nil
}

func (c *canvasBuf) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		c.Reset()
		return
	}
	n := w * h
	if c.w == w && c.h == h && cap(c.cells) >= n {
		c.cells = c.cells[:n]
		return
	}
	c.w = w
	c.h = h
	c.cells = make([]string, n)
}

func (c *canvasBuf) Fill(cell string) {
	for i := range c.cells {
		c.cells[i] = cell
	}
}

func (c *canvasBuf) Set(x, y int, cell string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell
}

type fieldOverlay struct {
	Title  string
	Lines  []string
	Footer string
	// Width is the minimum inner width; 0 fits the current lines.
	Width int
}

var (
	overlayBorder = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00cc7a"))
	overlayTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9d"))
	overlayText   = lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d7de"))
	overlayHelp   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	overlayPanel  = lipgloss.NewStyle().Background(lipgloss.Color("#0d1117"))
)

// applyOverlay draws a bordered panel centered on the canvas. The title is
// centered; body lines are left aligned like terminal output.
func applyOverlay(canvas *canvasBuf, ov *fieldOverlay) {
	h := canvas.h
	if h == 0 {
		return
	}
	w := canvas.w
	if w == 0 {
		return
	}

	innerW := ov.Width
	for _, s := range ov.Lines {
		innerW = max(innerW, len([]rune(s)))
	}
	innerW = max(innerW, len([]rune(ov.Title)), len([]rune(ov.Footer)))

	lines := make([]string, 0, 2+len(ov.Lines)+1)
	if ov.Title != "" {
		lines = append(lines, ov.Title)
	}
	bodyStart := len(lines)
	lines = append(lines, ov.Lines...)
	if ov.Footer != "" {
		lines = append(lines, ov.Footer)
	}
	innerH := len(lines)

	// Padding 1 on each side plus borders.
	boxW := min(innerW+4, w)
	boxH := min(innerH+4, h)

	x0 := (w - boxW) / 2
	y0 := (h - boxH) / 2

	put := func(x, y int, cell string) {
		canvas.Set(x, y, cell)
	}

	bgCell := overlayPanel.Render(" ")
	for y := y0; y < y0+boxH; y++ {
		for x := x0; x < x0+boxW; x++ {
			put(x, y, bgCell)
		}
	}

	hLine := overlayBorder.Render("─")
	vLine := overlayBorder.Render("│")
	for x := x0 + 1; x < x0+boxW-1; x++ {
		put(x, y0, hLine)
		put(x, y0+boxH-1, hLine)
	}
	for y := y0 + 1; y < y0+boxH-1; y++ {
		put(x0, y, vLine)
		put(x0+boxW-1, y, vLine)
	}
	put(x0, y0, overlayBorder.Render("╭"))
	put(x0+boxW-1, y0, overlayBorder.Render("╮"))
	put(x0, y0+boxH-1, overlayBorder.Render("╰"))
	put(x0+boxW-1, y0+boxH-1, overlayBorder.Render("╯"))

	tx0 := x0 + 2
	ty0 := y0 + 2
	for i, line := range lines {
		y := ty0 + i
		if y >= y0+boxH-2 {
			break
		}
		runes := []rune(line)
		if len(runes) > innerW {
			runes = runes[:innerW]
		}

		var st lipgloss.Style
		startX := tx0
		switch {
		case i == 0 && ov.Title != "":
			st = overlayTitle
			startX = tx0 + (innerW-len(runes))/2
		case i == len(lines)-1 && ov.Footer != "":
			st = overlayHelp
			startX = tx0 + (innerW-len(runes))/2
		case i >= bodyStart:
			st = overlayText
		}

		for j, r := range runes {
			x := startX + j
			if x >= x0+boxW-2 {
				break
			}
			put(x, y, overlayPanel.Foreground(st.GetForeground()).Render(string(r)))
		}
	}
}
