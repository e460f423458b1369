package cmd

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"github.com/fchimpan/matrix-rain/internal/contact"
	"github.com/fchimpan/matrix-rain/internal/export"
	"github.com/fchimpan/matrix-rain/internal/fbview"
	"github.com/fchimpan/matrix-rain/internal/mailrelay"
	"github.com/fchimpan/matrix-rain/internal/rain"
	"github.com/fchimpan/matrix-rain/internal/tcellview"
	"github.com/fchimpan/matrix-rain/internal/tui"
	"github.com/fchimpan/matrix-rain/internal/typewriter"
	"github.com/fchimpan/matrix-rain/internal/window"
)

func newAnimator(s Session) (*rain.Animator, error) {
	opts, err := s.Config.RainOptions()
	if err != nil {
		return nil, err
	}
	return rain.NewAnimator(opts, rain.NewSource(s.Seed)), nil
}

func defaultRunTUI(ctx context.Context, s Session) error {
	anim, err := newAnimator(s)
	if err != nil {
		return err
	}
	var intro *typewriter.Typewriter
	if !s.NoIntro {
		if lines := s.Config.IntroLines(); len(lines) > 0 {
			intro = typewriter.New(lines, s.Config.Intro.CharDelay.D(), s.Config.Intro.LineDelay.D())
		}
	}
	p := tea.NewProgram(
		tui.NewModel(tui.Options{
			Animator: anim,
			Interval: s.Config.Rain.Interval.D(),
			Speed:    s.Speed,
			Intro:    intro,
			Logger:   s.Logger,
		}),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func defaultRunTcell(ctx context.Context, s Session) error {
	anim, err := newAnimator(s)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	err = tcellview.Run(ctx, screen, tcellview.Options{
		Animator: anim,
		Interval: s.Config.Rain.Interval.D(),
		Logger:   s.Logger,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func defaultRunWindow(_ context.Context, s Session) error {
	anim, err := newAnimator(s)
	if err != nil {
		return err
	}
	return window.Run(window.Options{
		Animator: anim,
		Interval: s.Config.Rain.Interval.D(),
		FontFile: s.Config.Rain.FontFile,
		Logger:   s.Logger,
	})
}

func defaultRunFB(ctx context.Context, s Session, device string) error {
	anim, err := newAnimator(s)
	if err != nil {
		return err
	}
	dev, err := fbview.Open(device)
	if err != nil {
		return err
	}
	defer dev.Close()

	err = fbview.Run(ctx, dev, fbview.Options{
		Animator: anim,
		FontFile: s.Config.Rain.FontFile,
		Interval: s.Config.Rain.Interval.D(),
		Logger:   s.Logger,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func defaultRender(ctx context.Context, s Session, opts export.Options) ([]string, error) {
	anim, err := newAnimator(s)
	if err != nil {
		return nil, err
	}
	opts.Animator = anim
	opts.FontFile = s.Config.Rain.FontFile
	opts.Logger = s.Logger
	return export.Render(ctx, opts)
}

func defaultRunContactForm(ctx context.Context, s Session, send tui.SendFunc) error {
	p := tea.NewProgram(
		tui.NewContactModel(tui.ContactOptions{Send: send, Logger: s.Logger}),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func defaultSendContact(ctx context.Context, s Session, f contact.Form) error {
	client := mailrelay.NewClient(s.Config.Contact.Endpoint, s.Logger)
	params := contact.Params(f, s.Config.Contact.ToName)
	return client.Send(ctx, s.Config.Contact.Request(params))
}
