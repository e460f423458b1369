//go:build ebiten

package window

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/fchimpan/matrix-rain/internal/canvas"
	"github.com/fchimpan/matrix-rain/internal/rain"
)

// game adapts the animator to the ebiten.Game interface. The window's
// outside size drives the canvas and grid through Layout.
type game struct {
	anim   *rain.Animator
	img    *canvas.Image
	log    *zap.Logger
	w, h   int
	paused bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.anim.Tick(g.img)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	pix := g.img.RGBA().Pix
	b := screen.Bounds()
	if len(pix) != 4*b.Dx()*b.Dy() {
		return
	}
	screen.WritePixels(pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.img.Resize(g.w, g.h)
		g.anim.Resize(g.w, g.h)
		g.log.Debug("window resized",
			zap.Int("width", g.w),
			zap.Int("height", g.h),
			zap.Int("columns", g.anim.Grid().Len()))
	}
	return g.w, g.h
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	opts.setDefaults()

	img := canvas.NewImage(opts.Width, opts.Height, opts.Animator.Background())
	if opts.FontFile != "" {
		if err := img.LoadFont(opts.FontFile); err != nil {
			return err
		}
	}
	g := &game{anim: opts.Animator, img: img, log: opts.Logger}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(TPS(opts.Interval))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
