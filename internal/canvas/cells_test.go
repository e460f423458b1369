package canvas

import (
	"testing"

	"github.com/fchimpan/matrix-rain/internal/rain"
)

func TestCells_DrawTextUsesBaselineRow(t *testing.T) {
	t.Parallel()

	c := NewCells(16)
	c.Resize(16*4, 16*3)
	if cols, rows := c.Dims(); cols != 4 || rows != 3 {
		t.Fatalf("dims=%dx%d, want 4x3", cols, rows)
	}

	green := rain.MustParseHex("#00ff9d")
	c.DrawText("A", 32, 16, green)
	cell, ok := c.At(2, 0)
	if !ok || cell.Glyph != "A" || cell.Color != green {
		t.Fatalf("cell (2,0)=%+v ok=%v", cell, ok)
	}

	// Row 0 baseline sits above the first terminal row.
	c.DrawText("B", 0, 0, green)
	// Past the bottom is dropped.
	c.DrawText("C", 0, 16*4, green)
	if c.Live() != 1 {
		t.Fatalf("live=%d, want 1", c.Live())
	}
}

func TestCells_FoldsWideGlyphs(t *testing.T) {
	t.Parallel()

	c := NewCells(1)
	c.Resize(4, 2)
	c.DrawText("ア", 0, 1, rain.Color{G: 255})
	cell, _ := c.At(0, 0)
	if cell.Glyph != "ｱ" {
		t.Fatalf("glyph=%q, want half-width katakana", cell.Glyph)
	}

	c.DrawText("漢", 1, 1, rain.Color{G: 255})
	cell, _ = c.At(1, 0)
	if cell.Glyph != "?" {
		t.Fatalf("glyph=%q, want placeholder for wide glyph", cell.Glyph)
	}
}

func TestCells_OverlayFadesGlyphsOut(t *testing.T) {
	t.Parallel()

	c := NewCells(1)
	c.Resize(2, 2)
	white := rain.Color{R: 255, G: 255, B: 255}
	c.DrawText("x", 0, 1, white)

	c.FillRect(0, 0, 2, 2, rain.Color{}, 0.05)
	cell, ok := c.At(0, 0)
	if !ok || cell.Color.R >= 255 {
		t.Fatalf("expected dimmer glyph after one overlay, got %+v ok=%v", cell, ok)
	}

	for i := 0; i < 200 && c.Live() > 0; i++ {
		c.FillRect(0, 0, 2, 2, rain.Color{}, 0.05)
	}
	if c.Live() != 0 {
		t.Fatalf("glyph never faded out")
	}
}

func TestCells_FadeClearsWithTinyAlpha(t *testing.T) {
	t.Parallel()

	c := NewCells(1)
	c.Resize(1, 1)
	c.DrawText("x", 0, 1, rain.Color{G: 255})
	for i := 0; i < 2000 && c.Live() > 0; i++ {
		c.FillRect(0, 0, 1, 1, rain.Color{}, 0.01)
	}
	if c.Live() != 0 {
		t.Fatalf("glyph stalled above the fade floor")
	}
}

func TestCells_ResizeClears(t *testing.T) {
	t.Parallel()

	c := NewCells(2)
	c.Resize(8, 8)
	c.DrawText("x", 0, 2, rain.Color{G: 255})
	c.Resize(4, 4)
	if c.Live() != 0 {
		t.Fatalf("expected empty grid after resize")
	}
	c.Resize(-5, 3)
	if cols, rows := c.Dims(); cols != 0 || rows != 1 {
		t.Fatalf("dims=%dx%d, want 0x1", cols, rows)
	}
}

func TestCells_AnimatorFrames(t *testing.T) {
	t.Parallel()

	c := NewCells(rain.DefaultCellSize)
	a := rain.NewAnimator(rain.DefaultOptions(), rain.NewSource(12))
	w, h := c.PixelSize(40, 20)
	c.Resize(w, h)
	a.Resize(w, h)
	for range 60 {
		a.Tick(c)
	}
	if c.Live() == 0 {
		t.Fatalf("expected visible glyphs after 60 ticks")
	}
	if c.Font() != rain.DefaultCellSize {
		t.Fatalf("font=%d", c.Font())
	}
}
