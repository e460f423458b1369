package rain_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fchimpan/matrix-rain/internal/rain"
	"github.com/fchimpan/matrix-rain/internal/rain/raintest"
)

func TestGrid_ColumnCountFollowsWidth(t *testing.T) {
	t.Parallel()

	g := rain.NewGrid(16, nil, rain.NewSource(7))
	widths := []int{320, 160, 0, 15, 16, 17, 1000, 31, 32, 640, 8}
	for _, w := range widths {
		g.Resize(w, 200)
		if got, want := g.Len(), w/16; got != want {
			t.Fatalf("after Resize(%d): columns=%d, want %d", w, got, want)
		}
	}
}

func TestGrid_InitialScenario(t *testing.T) {
	t.Parallel()

	g := rain.NewGrid(16, nil, rain.NewSource(42))
	g.Resize(320, 160)
	if g.Len() != 20 {
		t.Fatalf("columns=%d, want 20", g.Len())
	}
	before := g.Columns()
	for i, p := range before {
		if p < 0 || p >= 10 {
			t.Fatalf("column %d starts at %d, want [0,10)", i, p)
		}
	}

	g.Resize(160, 160)
	if g.Len() != 10 {
		t.Fatalf("columns=%d after shrink, want 10", g.Len())
	}
	if diff := cmp.Diff(before[:10], g.Columns()); diff != "" {
		t.Fatalf("surviving columns changed (-want +got):\n%s", diff)
	}
}

func TestGrid_ShrinkThenGrowKeepsSurvivors(t *testing.T) {
	t.Parallel()

	g := rain.NewGrid(16, nil, rain.NewSource(3))
	g.Resize(320, 320)
	for range 5 {
		g.AdvanceAndSample()
	}
	kept := g.Columns()[:4]

	g.Resize(64, 320)
	g.Resize(480, 320)
	if g.Len() != 30 {
		t.Fatalf("columns=%d, want 30", g.Len())
	}
	if diff := cmp.Diff(kept, g.Columns()[:4]); diff != "" {
		t.Fatalf("surviving columns changed (-want +got):\n%s", diff)
	}
	for i, p := range g.Columns()[4:] {
		if p < 0 || p >= 20 {
			t.Fatalf("new column %d starts at %d, want [0,20)", i+4, p)
		}
	}
}

func TestGrid_EmitsOneCellPerColumnInOrder(t *testing.T) {
	t.Parallel()

	g := rain.NewGrid(16, nil, rain.NewSource(11))
	g.Resize(16*37, 480)
	for tick := range 50 {
		rows := g.Columns()
		cells := g.AdvanceAndSample()
		if len(cells) != 37 {
			t.Fatalf("tick %d: %d cells, want 37", tick, len(cells))
		}
		for i, c := range cells {
			if c.Column != i {
				t.Fatalf("tick %d: cell %d has column %d", tick, i, c.Column)
			}
			if c.Row != rows[i] {
				t.Fatalf("tick %d: column %d emitted row %d, want %d", tick, i, c.Row, rows[i])
			}
			if !slices.Contains(rain.DefaultAlphabet, c.Glyph) {
				t.Fatalf("tick %d: glyph %q not in alphabet", tick, c.Glyph)
			}
		}
	}
}

func TestGrid_PositionsAdvanceOrResetPastBottom(t *testing.T) {
	t.Parallel()

	const height = 48
	g := rain.NewGrid(16, nil, rain.NewSource(99))
	g.Resize(16*20, height)

	resets := 0
	for tick := range 2000 {
		before := g.Columns()
		g.AdvanceAndSample()
		after := g.Columns()
		for i := range before {
			switch {
			case after[i] == before[i]+1:
			case after[i] == 0:
				if before[i]*16 <= height {
					t.Fatalf("tick %d: column %d reset from visible row %d", tick, i, before[i])
				}
				resets++
			default:
				t.Fatalf("tick %d: column %d moved %d -> %d", tick, i, before[i], after[i])
			}
		}
	}
	if resets == 0 {
		t.Fatalf("expected at least one reset over 2000 ticks")
	}
}

func TestGrid_NoResetAtExactBottomEdge(t *testing.T) {
	t.Parallel()

	src := &raintest.Script{Floats: []float64{0.95}}
	g := rain.NewGrid(16, rain.Alphabet{"x"}, src)
	g.Resize(16, 160)
	if got := g.Columns()[0]; got != 9 {
		t.Fatalf("start row=%d, want 9", got)
	}

	src.Floats = []float64{0.1}
	g.AdvanceAndSample()
	if got := g.Columns()[0]; got != 10 {
		t.Fatalf("row=%d, want 10", got)
	}

	// 10*16 == 160: not past the bottom, so no reset draw may be taken.
	src.Floats = []float64{0.1, 0.999}
	g.AdvanceAndSample()
	if got := g.Columns()[0]; got != 11 {
		t.Fatalf("row=%d, want 11", got)
	}
	if len(src.Floats) != 1 {
		t.Fatalf("reset draw consumed at the bottom edge")
	}

	src.Floats = []float64{0.1, 0.999}
	g.AdvanceAndSample()
	if got := g.Columns()[0]; got != 0 {
		t.Fatalf("row=%d, want reset to 0", got)
	}

	src.Floats = []float64{0.1}
	g.AdvanceAndSample()
	if got := g.Columns()[0]; got != 1 {
		t.Fatalf("row=%d after reset, want 1", got)
	}
}

func TestGrid_LosingResetDrawKeepsFalling(t *testing.T) {
	t.Parallel()

	src := &raintest.Script{Floats: []float64{0.99}}
	g := rain.NewGrid(16, rain.Alphabet{"x"}, src)
	g.Resize(16, 32)
	for range 3 {
		src.Floats = []float64{0.5, 0.975}
		g.AdvanceAndSample()
	}
	// Start row 1, three ticks: 0.975 never exceeds the threshold.
	if got := g.Columns()[0]; got != 4 {
		t.Fatalf("row=%d, want 4", got)
	}
}

func TestGrid_ZeroWidth(t *testing.T) {
	t.Parallel()

	g := rain.NewGrid(16, nil, rain.NewSource(1))
	g.Resize(320, 160)
	g.Resize(0, 160)
	if g.Len() != 0 {
		t.Fatalf("columns=%d, want 0", g.Len())
	}
	if cells := g.AdvanceAndSample(); len(cells) != 0 {
		t.Fatalf("cells=%d, want 0", len(cells))
	}
}

func TestGrid_SameSeedSameSequence(t *testing.T) {
	t.Parallel()

	run := func() [][]rain.Cell {
		g := rain.NewGrid(16, nil, rain.NewSource(2024))
		g.Resize(256, 64)
		var out [][]rain.Cell
		for range 40 {
			out = append(out, g.AdvanceAndSample())
		}
		return out
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("seeded runs diverged (-first +second):\n%s", diff)
	}
}

func TestGrid_ScriptedSample(t *testing.T) {
	t.Parallel()

	src := &raintest.Script{
		Floats: []float64{0, 0.5},
		Ints:   []int{2, 0},
	}
	g := rain.NewGrid(10, rain.Alphabet{"a", "b", "c"}, src)
	g.Resize(25, 100)

	src.Floats = []float64{0.96, 0.3}
	got := g.AdvanceAndSample()
	want := []rain.Cell{
		{Column: 0, Row: 0, Glyph: "c", Tier: rain.TierLead},
		{Column: 1, Row: 5, Glyph: "a", Tier: rain.TierDim},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cells mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 6}, g.Columns()); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}
