// Package tcellview runs the rain directly on a tcell screen.
package tcellview

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/fchimpan/matrix-rain/internal/canvas"
	"github.com/fchimpan/matrix-rain/internal/rain"
)

type Options struct {
	Animator *rain.Animator
	Cells    *canvas.Cells
	Interval time.Duration
	// Ticks overrides the interval ticker.
	Ticks  <-chan time.Time
	Logger *zap.Logger
}

// View copies a cell canvas onto a tcell screen.
type View struct {
	screen tcell.Screen
	cells  *canvas.Cells
	bg     tcell.Style
}

func New(screen tcell.Screen, cells *canvas.Cells, background rain.Color) *View {
	return &View{
		screen: screen,
		cells:  cells,
		bg:     tcell.StyleDefault.Background(toColor(background)),
	}
}

// PixelSize converts a screen size in cells to the canvas' pixel space.
func (v *View) PixelSize(cols, rows int) rain.Size {
	w, h := v.cells.PixelSize(cols, rows)
	return rain.Size{Width: w, Height: h}
}

func (v *View) Present() {
	cols, rows := v.cells.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c, ok := v.cells.At(x, y)
			if !ok {
				v.screen.SetContent(x, y, ' ', nil, v.bg)
				continue
			}
			r, _ := utf8.DecodeRuneInString(c.Glyph)
			v.screen.SetContent(x, y, r, nil, v.bg.Foreground(toColor(c.Color)))
		}
	}
	v.screen.Show()
}

func toColor(c rain.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Run animates on an initialized screen until ctx is done or the user quits
// with q, Esc or Ctrl-C. The caller owns Init and Fini.
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cells := opts.Cells
	if cells == nil {
		cells = canvas.NewCells(opts.Animator.Grid().CellSize())
	}
	v := New(screen, cells, opts.Animator.Background())

	ticks := opts.Ticks
	if ticks == nil {
		interval := opts.Interval
		if interval <= 0 {
			interval = rain.DefaultInterval
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	initial := v.PixelSize(screen.Size())
	cells.Resize(initial.Width, initial.Height)
	opts.Animator.Resize(initial.Width, initial.Height)
	resizes := make(chan rain.Size, 1)

	quitRequested := make(chan struct{})
	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					cancel()
					return
				}
				switch ev := ev.(type) {
				case *tcell.EventResize:
					sz := v.PixelSize(ev.Size())
					log.Debug("screen resized", zap.Int("width", sz.Width), zap.Int("height", sz.Height))
					select {
					case resizes <- sz:
					case <-runCtx.Done():
						return
					}
				case *tcell.EventKey:
					if isQuit(ev) {
						close(quitRequested)
						cancel()
						return
					}
				}
			}
		}
	}()

	err := rain.Run(runCtx, opts.Animator, cells, ticks, resizes, v.Present)
	select {
	case <-quitRequested:
		return nil
	default:
	}
	if errors.Is(err, context.Canceled) && ctx.Err() == nil {
		// Event stream ended.
		return nil
	}
	return err
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}
