package cmd

import (
	"context"
	"errors"
	"fmt"
)

const (
	backendTUI    = "tui"
	backendTcell  = "tcell"
	backendWindow = "window"
	backendFB     = "fb"
)

var errNotTerminal = errors.New("stdout is not a terminal (use `rain render` for headless output)")

func run(ctx context.Context, deps Deps, backend, device string, s Session) error {
	if deps.RunTUI == nil {
		return fmt.Errorf("deps.RunTUI is nil")
	}
	if deps.RunTcell == nil {
		return fmt.Errorf("deps.RunTcell is nil")
	}
	if deps.RunWindow == nil {
		return fmt.Errorf("deps.RunWindow is nil")
	}
	if deps.RunFB == nil {
		return fmt.Errorf("deps.RunFB is nil")
	}
	if deps.IsTerminal == nil {
		return fmt.Errorf("deps.IsTerminal is nil")
	}

	switch backend {
	case backendTUI:
		if !deps.IsTerminal() {
			return errNotTerminal
		}
		return deps.RunTUI(ctx, s)
	case backendTcell:
		if !deps.IsTerminal() {
			return errNotTerminal
		}
		return deps.RunTcell(ctx, s)
	case backendWindow:
		return deps.RunWindow(ctx, s)
	case backendFB:
		return deps.RunFB(ctx, s, device)
	default:
		return fmt.Errorf("unknown backend %q (want tui, tcell, window or fb)", backend)
	}
}
