package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fchimpan/matrix-rain/internal/config"
	"github.com/fchimpan/matrix-rain/internal/contact"
	"github.com/fchimpan/matrix-rain/internal/export"
	"github.com/fchimpan/matrix-rain/internal/logging"
	"github.com/fchimpan/matrix-rain/internal/tui"
)

// Session is everything a backend needs to start animating.
type Session struct {
	Config  config.Config
	Seed    uint64
	Speed   float64
	NoIntro bool
	Logger  *zap.Logger
}

type Deps struct {
	RunTUI    func(ctx context.Context, s Session) error
	RunTcell  func(ctx context.Context, s Session) error
	RunWindow func(ctx context.Context, s Session) error
	RunFB     func(ctx context.Context, s Session, device string) error
	Render    func(ctx context.Context, s Session, opts export.Options) ([]string, error)

	RunContactForm func(ctx context.Context, s Session, send tui.SendFunc) error
	SendContact    func(ctx context.Context, s Session, f contact.Form) error

	IsTerminal func() bool
	Getenv     func(string) string
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		RunTUI:         defaultRunTUI,
		RunTcell:       defaultRunTcell,
		RunWindow:      defaultRunWindow,
		RunFB:          defaultRunFB,
		Render:         defaultRender,
		RunContactForm: defaultRunContactForm,
		SendContact:    defaultSendContact,
		IsTerminal:     func() bool { return term.FromEnv().IsTerminalOutput() },
		Getenv:         os.Getenv,
		Now:            time.Now,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	}
}

// sessionFlags are shared by every subcommand.
type sessionFlags struct {
	configPath string
	logFile    string
	seed       uint64
	cellSize   int
	interval   time.Duration
}

func NewRootCmd(deps Deps) *cobra.Command {
	var sf sessionFlags
	var backend string
	var device string
	var speed float64
	var noIntro bool

	c := &cobra.Command{
		Use:          "rain",
		Short:        "Falling green glyphs in your terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if speed <= 0 {
				return fmt.Errorf("--speed must be > 0")
			}
			s, err := loadSession(cmd, deps, sf)
			if err != nil {
				return err
			}
			defer func() { _ = s.Logger.Sync() }()
			s.Speed = speed
			s.NoIntro = noIntro
			return run(cmd.Context(), deps, backend, device, s)
		},
	}

	pf := c.PersistentFlags()
	pf.StringVarP(&sf.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&sf.logFile, "log-file", "", "write logs to this file (default: no logging)")
	pf.Uint64Var(&sf.seed, "seed", 0, "random seed (default: current time)")
	pf.IntVar(&sf.cellSize, "cell-size", 0, "glyph cell size in pixels (default from config)")
	pf.DurationVar(&sf.interval, "interval", 0, "frame interval, e.g. 40ms (default from config)")

	c.Flags().StringVarP(&backend, "backend", "b", backendTUI, "display backend: tui, tcell, window or fb")
	c.Flags().StringVar(&device, "device", "", "framebuffer device for the fb backend (default /dev/fb0)")
	c.Flags().Float64VarP(&speed, "speed", "s", 1.0, "animation speed multiplier (tui backend)")
	c.Flags().BoolVar(&noIntro, "no-intro", false, "skip the typed intro banner")

	c.AddCommand(newRenderCmd(deps, &sf))
	c.AddCommand(newContactCmd(deps, &sf))

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}

// loadSession resolves config file, environment and flags, in that order of
// increasing precedence.
func loadSession(cmd *cobra.Command, deps Deps, sf sessionFlags) (Session, error) {
	cfg, err := config.Load(sf.configPath)
	if err != nil {
		return Session{}, err
	}
	cfg.ApplyEnv(deps.Getenv)

	flags := cmd.Flags()
	if flags.Changed("cell-size") {
		cfg.Rain.CellSize = sf.cellSize
	}
	if flags.Changed("interval") {
		cfg.Rain.Interval = config.Duration(sf.interval)
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = sf.logFile
	}
	if err := cfg.Validate(); err != nil {
		return Session{}, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return Session{}, err
	}

	seed := sf.seed
	if !flags.Changed("seed") {
		seed = uint64(deps.Now().UnixNano())
	}
	logger.Info("session loaded",
		zap.String("config", sf.configPath),
		zap.Uint64("seed", seed),
		zap.Int("cell_size", cfg.Rain.CellSize),
		zap.Duration("interval", cfg.Rain.Interval.D()))

	return Session{Config: cfg, Seed: seed, Speed: 1, Logger: logger}, nil
}
