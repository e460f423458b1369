package rain

import "math"

const DefaultCellSize = 16

// resetChance is the per-tick threshold a column past the bottom edge must
// beat to wrap back to row 0.
const resetChance = 0.975

// Cell is one glyph-draw instruction produced by a tick.
type Cell struct {
	Column int
	Row    int
	Glyph  string
	Tier   Tier
}

// Grid owns one falling trail per cellSize-wide slice of the surface.
//
// Grid is not safe for concurrent use; the tick and resize handlers are
// expected to run on the same goroutine.
type Grid struct {
	cellSize int
	height   int
	alphabet Alphabet
	rng      Source

	// positions[i] is the row of column i's leading glyph.
	positions []int
}

// NewGrid returns an empty grid. Call Resize to create columns.
// A non-positive cellSize falls back to DefaultCellSize and an empty
// alphabet to DefaultAlphabet.
func NewGrid(cellSize int, alphabet Alphabet, rng Source) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if len(alphabet) == 0 {
		alphabet = DefaultAlphabet
	}
	return &Grid{
		cellSize: cellSize,
		alphabet: alphabet,
		rng:      rng,
	}
}

func (g *Grid) CellSize() int { return g.cellSize }

func (g *Grid) Len() int { return len(g.positions) }

// Height is the surface height recorded by the last Resize.
func (g *Grid) Height() int { return g.height }

// Columns returns a copy of every column's current row.
func (g *Grid) Columns() []int {
	out := make([]int, len(g.positions))
	copy(out, g.positions)
	return out
}

// Resize re-partitions the grid for a surface of width x height pixels.
// Columns past the new count are dropped from the end; new columns start at a
// random row so the rain looks already in progress. Surviving columns keep
// their rows even if they now sit below the new bottom edge.
func (g *Grid) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	g.height = height

	n := width / g.cellSize
	if n < len(g.positions) {
		g.positions = g.positions[:n:n]
		return
	}
	for len(g.positions) < n {
		start := int(math.Floor(g.rng.Float64() * float64(height) / float64(g.cellSize)))
		g.positions = append(g.positions, start)
	}
}

// AdvanceAndSample emits one Cell per column in index order and then moves
// every column down a row, or back to row 0 once it has fallen past the
// bottom edge and wins the reset draw.
func (g *Grid) AdvanceAndSample() []Cell {
	return g.AppendCells(make([]Cell, 0, len(g.positions)))
}

// AppendCells is AdvanceAndSample appending into dst.
func (g *Grid) AppendCells(dst []Cell) []Cell {
	for i, pos := range g.positions {
		glyph := g.alphabet[g.rng.IntN(len(g.alphabet))]
		tier := TierFor(g.rng.Float64())
		dst = append(dst, Cell{Column: i, Row: pos, Glyph: glyph, Tier: tier})

		// The reset draw only happens once the column is out of view.
		if pos*g.cellSize > g.height && g.rng.Float64() > resetChance {
			g.positions[i] = 0
			continue
		}
		g.positions[i] = pos + 1
	}
	return dst
}
