package rain

import "time"

const (
	DefaultInterval  = 40 * time.Millisecond
	DefaultFadeAlpha = 0.05
)

var DefaultBackground = Color{}

type Options struct {
	CellSize   int
	Alphabet   Alphabet
	Palette    Palette
	Background Color
	// FadeAlpha is the opacity of the overlay painted before each frame.
	// Lower values leave longer trails.
	FadeAlpha float64
}

func DefaultOptions() Options {
	return Options{
		CellSize:   DefaultCellSize,
		Alphabet:   DefaultAlphabet,
		Palette:    DefaultPalette,
		Background: DefaultBackground,
		FadeAlpha:  DefaultFadeAlpha,
	}
}

// Animator drives a Grid: Resize reconciles it with the surface and Tick
// paints one frame.
type Animator struct {
	grid       *Grid
	palette    Palette
	background Color
	fadeAlpha  float64

	size   Size
	frames uint64
	cells  []Cell
}

func NewAnimator(opts Options, rng Source) *Animator {
	if opts.FadeAlpha <= 0 || opts.FadeAlpha > 1 {
		opts.FadeAlpha = DefaultFadeAlpha
	}
	return &Animator{
		grid:       NewGrid(opts.CellSize, opts.Alphabet, rng),
		palette:    opts.Palette,
		background: opts.Background,
		fadeAlpha:  opts.FadeAlpha,
	}
}

func (a *Animator) Grid() *Grid { return a.grid }

func (a *Animator) Size() Size { return a.size }

func (a *Animator) Frames() uint64 { return a.frames }

func (a *Animator) Background() Color { return a.background }

// Resize records the new surface size and re-partitions the grid.
func (a *Animator) Resize(width, height int) {
	a.size = Size{Width: max(width, 0), Height: max(height, 0)}
	a.grid.Resize(width, height)
}

// Tick paints one frame onto s and reports how many glyphs were drawn.
// The translucent overlay is what fades the previous frames into trails.
func (a *Animator) Tick(s Surface) int {
	a.frames++
	if a.size.Width > 0 && a.size.Height > 0 {
		s.FillRect(0, 0, a.size.Width, a.size.Height, a.background, a.fadeAlpha)
	}

	a.cells = a.grid.AppendCells(a.cells[:0])
	if len(a.cells) == 0 {
		return 0
	}

	cs := a.grid.CellSize()
	s.SetFont(cs)
	for _, c := range a.cells {
		s.DrawText(c.Glyph, c.Column*cs, c.Row*cs, a.palette.For(c.Tier))
	}
	return len(a.cells)
}
