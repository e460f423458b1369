package tcellview

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/fchimpan/matrix-rain/internal/canvas"
	"github.com/fchimpan/matrix-rain/internal/rain"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestView_PresentCopiesGlyphs(t *testing.T) {
	screen := newScreen(t, 8, 4)
	cells := canvas.NewCells(rain.DefaultCellSize)
	v := New(screen, cells, rain.Color{})

	sz := v.PixelSize(8, 4)
	cells.Resize(sz.Width, sz.Height)
	lead := rain.DefaultPalette.For(rain.TierLead)
	cells.DrawText("Z", 2*rain.DefaultCellSize, 2*rain.DefaultCellSize, lead)
	v.Present()

	r, _, style, _ := screen.GetContent(2, 1)
	if r != 'Z' {
		t.Fatalf("rune=%q, want 'Z'", r)
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("fg=%v, want white", fg)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Fatalf("empty cell rune=%q", r)
	}
}

func TestRun_TicksUntilQuit(t *testing.T) {
	screen := newScreen(t, 20, 10)
	anim := rain.NewAnimator(rain.DefaultOptions(), rain.NewSource(3))
	ticks := make(chan time.Time)

	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), screen, Options{Animator: anim, Ticks: ticks})
	}()

	for range 3 {
		ticks <- time.Now()
	}
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
	if got := anim.Frames(); got != 3 {
		t.Fatalf("frames=%d, want 3", got)
	}
	if got := anim.Grid().Len(); got != 20 {
		t.Fatalf("columns=%d, want 20", got)
	}
}

func TestRun_ContextCancel(t *testing.T) {
	screen := newScreen(t, 4, 4)
	anim := rain.NewAnimator(rain.DefaultOptions(), rain.NewSource(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, screen, Options{Animator: anim, Ticks: make(chan time.Time)})
	if err != context.Canceled {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}
