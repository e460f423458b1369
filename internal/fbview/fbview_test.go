package fbview

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/fchimpan/matrix-rain/internal/rain"
)

func TestBlit_Scales(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, blue)

	dst := image.NewRGBA(image.Rect(0, 0, 4, 2))
	Blit(dst, src)

	for y := range 2 {
		for x := range 4 {
			want := red
			if x >= 2 {
				want = blue
			}
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("(%d,%d)=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBlit_SameSizeCopies(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	src.SetRGBA(1, 1, color.RGBA{G: 200, A: 255})
	dst := image.NewRGBA(image.Rect(0, 0, 3, 3))
	Blit(dst, src)
	if got := dst.RGBAAt(1, 1); got.G != 200 {
		t.Fatalf("center=%v", got)
	}
}

func TestRun_PaintsDevice(t *testing.T) {
	t.Parallel()

	dst := image.NewRGBA(image.Rect(0, 0, 128, 64))
	anim := rain.NewAnimator(rain.DefaultOptions(), rain.NewSource(9))

	ticks := make(chan time.Time, 40)
	for range 40 {
		ticks <- time.Now()
	}
	close(ticks)

	if err := Run(context.Background(), dst, Options{Animator: anim, Scale: 2, Ticks: ticks}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := anim.Grid().Len(); got != 64/rain.DefaultCellSize {
		t.Fatalf("columns=%d", got)
	}
	if anim.Frames() != 40 {
		t.Fatalf("frames=%d", anim.Frames())
	}

	lit := 0
	for y := range 64 {
		for x := range 128 {
			if dst.RGBAAt(x, y).G > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("no glyph pixels reached the device")
	}
}

func TestRun_BadFont(t *testing.T) {
	t.Parallel()

	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	anim := rain.NewAnimator(rain.DefaultOptions(), rain.NewSource(1))
	err := Run(context.Background(), dst, Options{Animator: anim, FontFile: "/nonexistent.ttf"})
	if err == nil {
		t.Fatalf("expected font error")
	}
}
