package rain

import (
	"context"
	"time"
)

// Run serializes resize events and ticks on the calling goroutine until ctx
// is done. If s implements Resizer it is resized before the grid. present,
// when non-nil, is called after every painted frame.
func Run(ctx context.Context, a *Animator, s Surface, ticks <-chan time.Time, resizes <-chan Size, present func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sz, ok := <-resizes:
			if !ok {
				resizes = nil
				continue
			}
			if r, ok := s.(Resizer); ok {
				r.Resize(sz.Width, sz.Height)
			}
			a.Resize(sz.Width, sz.Height)
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			a.Tick(s)
			if present != nil {
				present()
			}
		}
	}
}
