// Package export renders the rain headlessly into PNG frames.
package export

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fchimpan/matrix-rain/internal/canvas"
	"github.com/fchimpan/matrix-rain/internal/rain"
)

const filePattern = "frame_%04d.png"

type Options struct {
	Animator *rain.Animator
	Width    int
	Height   int
	Frames   int
	Dir      string
	FontFile string
	Logger   *zap.Logger
}

var (
	ErrNoFrames = errors.New("frames must be positive")
	ErrBadSize  = errors.New("width and height must be positive")
)

// FrameName returns the file name of the i-th frame, counting from 1.
func FrameName(i int) string { return fmt.Sprintf(filePattern, i) }

// Render ticks the animator Frames times and writes every frame to Dir. It
// returns the written paths in order.
func Render(ctx context.Context, opts Options) ([]string, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrBadSize
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	img := canvas.NewImage(opts.Width, opts.Height, opts.Animator.Background())
	if opts.FontFile != "" {
		if err := img.LoadFont(opts.FontFile); err != nil {
			return nil, err
		}
	}
	opts.Animator.Resize(opts.Width, opts.Height)

	paths := make([]string, 0, opts.Frames)
	for i := 1; i <= opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		n := opts.Animator.Tick(img)
		path := filepath.Join(opts.Dir, FrameName(i))
		if err := writePNG(path, img); err != nil {
			return paths, err
		}
		log.Debug("frame written", zap.String("path", path), zap.Int("glyphs", n))
		paths = append(paths, path)
	}
	log.Info("render finished", zap.Int("frames", len(paths)), zap.String("dir", opts.Dir))
	return paths, nil
}

func writePNG(path string, img *canvas.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close frame: %w", cerr)
		}
	}()
	if err := png.Encode(f, img.RGBA()); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}
