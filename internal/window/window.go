// Package window runs the rain in a desktop window. The window backend needs
// the ebiten build tag; without it Run returns ErrUnavailable.
package window

import (
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/fchimpan/matrix-rain/internal/rain"
)

var ErrUnavailable = errors.New("window backend requires building with the 'ebiten' tag")

const (
	DefaultTitle  = "matrix rain"
	DefaultWidth  = 960
	DefaultHeight = 600
)

type Options struct {
	Animator *rain.Animator
	Interval time.Duration
	FontFile string
	Title    string
	Width    int
	Height   int
	Logger   *zap.Logger
}

func (o *Options) setDefaults() {
	if o.Interval <= 0 {
		o.Interval = rain.DefaultInterval
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// TPS converts a frame interval into an update rate of at least one tick
// per second.
func TPS(interval time.Duration) int {
	if interval <= 0 {
		interval = rain.DefaultInterval
	}
	return max(int(math.Round(float64(time.Second)/float64(interval))), 1)
}
