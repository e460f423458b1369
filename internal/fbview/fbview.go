// Package fbview runs the rain on a Linux framebuffer device.
package fbview

import (
	"context"
	"image"
	"image/draw"
	"time"

	fb "github.com/gonutz/framebuffer"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/fchimpan/matrix-rain/internal/canvas"
	"github.com/fchimpan/matrix-rain/internal/rain"
)

const DefaultDevice = "/dev/fb0"

// Open opens a framebuffer device. The returned device must be closed.
func Open(path string) (*fb.Device, error) {
	if path == "" {
		path = DefaultDevice
	}
	return fb.Open(path)
}

type Options struct {
	Animator *rain.Animator
	// Scale divides the device resolution into the logical canvas; pixels are
	// enlarged with nearest-neighbor sampling on blit.
	Scale    int
	FontFile string
	Interval time.Duration
	Ticks    <-chan time.Time
	Logger   *zap.Logger
}

// Blit copies src onto dst, scaling to dst's bounds.
func Blit(dst draw.Image, src *image.RGBA) {
	if src.Bounds().Eq(dst.Bounds()) {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// Run paints frames onto dst until ctx is done or ticks closes. The device
// size is fixed, so the canvas is sized once.
func Run(ctx context.Context, dst draw.Image, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	scale := max(opts.Scale, 1)
	b := dst.Bounds()
	w, h := b.Dx()/scale, b.Dy()/scale

	img := canvas.NewImage(w, h, opts.Animator.Background())
	if opts.FontFile != "" {
		if err := img.LoadFont(opts.FontFile); err != nil {
			return err
		}
	}
	opts.Animator.Resize(w, h)
	log.Info("framebuffer open",
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Int("scale", scale),
		zap.Int("columns", opts.Animator.Grid().Len()))

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

	return rain.Run(ctx, opts.Animator, img, ticks, nil, func() {
		Blit(dst, img.RGBA())
	})
}
