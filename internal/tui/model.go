package tui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/fchimpan/matrix-rain/internal/canvas"
	"github.com/fchimpan/matrix-rain/internal/rain"
	"github.com/fchimpan/matrix-rain/internal/typewriter"
)

type Options struct {
	Animator *rain.Animator
	// Cells maps terminal cells onto the animator's pixel grid; its scale
	// should equal the animator's cell size so one column is one cell.
	Cells    *canvas.Cells
	Interval time.Duration
	Speed    float64
	Intro    *typewriter.Typewriter
	Logger   *zap.Logger
}

type Model struct {
	anim  *rain.Animator
	cells *canvas.Cells
	log   *zap.Logger

	interval time.Duration
	speed    float64
	lastTick time.Time

	ready bool
	w     int
	h     int

	paused  bool
	showHUD bool

	intro       *typewriter.Typewriter
	introHidden bool
	introWidth  int
	blinkAcc    time.Duration

	viewBuf bytes.Buffer
	canvas  canvasBuf
	styles  map[rain.Color]lipgloss.Style
}

const (
	minSpeed = 0.25
	maxSpeed = 5

	hudLines = 1

	blinkPeriod = time.Second
	// maxStyles bounds the per-color style cache; faded colors are many.
	maxStyles = 4096
)

func NewModel(opts Options) *Model {
	if opts.Interval <= 0 {
		opts.Interval = rain.DefaultInterval
	}
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Cells == nil {
		opts.Cells = canvas.NewCells(opts.Animator.Grid().CellSize())
	}
	m := &Model{
		anim:     opts.Animator,
		cells:    opts.Cells,
		log:      opts.Logger,
		interval: opts.Interval,
		speed:    opts.Speed,
		intro:    opts.Intro,
		showHUD:  true,
		styles:   make(map[rain.Color]lipgloss.Style),
	}
	if m.intro != nil {
		// Size the box for the finished text so it does not grow while typing.
		probe := *m.intro
		probe.Skip()
		for _, l := range probe.Lines() {
			m.introWidth = max(m.introWidth, lipgloss.Width(l))
		}
	}
	return m
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = rain.DefaultInterval
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(m.frameDuration())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w = msg.Width
		m.h = msg.Height
		m.resize()
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		dt := time.Duration(0)
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		// Clamp so a stalled terminal does not fast-forward the intro.
		dt = min(max(dt, 0), time.Second)

		if m.intro != nil {
			m.intro.Advance(dt)
			if m.intro.Done() {
				m.blinkAcc = (m.blinkAcc + dt) % blinkPeriod
			}
		}
		if m.ready && !m.paused {
			m.anim.Tick(m.cells)
		}
		return m, tickCmd(m.frameDuration())
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "+", "=":
			m.speed = min(m.speed+0.1, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed-0.1, minSpeed)
		case "h", "H":
			m.showHUD = !m.showHUD
			if m.ready {
				m.resize()
			}
		case "enter":
			if m.intro != nil {
				if m.intro.Done() {
					m.introHidden = !m.introHidden
				} else {
					m.intro.Skip()
				}
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) frameDuration() time.Duration {
	if m.paused {
		return time.Second / 15
	}
	return time.Duration(float64(m.interval) / m.speed)
}

// rows is the terminal height left for the rain.
func (m *Model) rows() int {
	rows := m.h
	if m.showHUD {
		rows -= hudLines
	}
	return max(rows, 0)
}

func (m *Model) resize() {
	pw, ph := m.cells.PixelSize(m.w, m.rows())
	m.cells.Resize(pw, ph)
	m.anim.Resize(pw, ph)
	m.ready = true
	m.log.Debug("surface resized",
		zap.Int("cols", m.w),
		zap.Int("rows", m.rows()),
		zap.Int("columns", m.anim.Grid().Len()))
}

func (m *Model) View() string {
	if !m.ready {
		return "loading...\n"
	}

	m.viewBuf.Reset()
	b := &m.viewBuf

	cols, rows := m.cells.Dims()
	m.canvas.Resize(cols, rows)
	m.canvas.Fill(" ")
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if c, ok := m.cells.At(x, y); ok {
				m.canvas.Set(x, y, m.style(c.Color).Render(c.Glyph))
			}
		}
	}

	if m.intro != nil && !m.introHidden {
		lines := m.intro.Lines()
		if m.intro.Done() && m.blinkAcc >= blinkPeriod/2 {
			lines[len(lines)-1] = " "
		}
		footer := "enter to skip"
		if m.intro.Done() {
			footer = "enter to hide"
		}
		applyOverlay(&m.canvas, &fieldOverlay{
			Title:  "~/portfolio",
			Lines:  lines,
			Footer: footer,
			Width:  m.introWidth,
		})
	}

	for y := 0; y < m.canvas.h; y++ {
		row := m.canvas.cells[y*m.canvas.w : (y+1)*m.canvas.w]
		for _, cell := range row {
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}

	if m.showHUD {
		b.WriteString(renderHUD(m.anim.Frames(), m.anim.Grid().Len(), m.speed, m.paused))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *Model) style(c rain.Color) lipgloss.Style {
	st, ok := m.styles[c]
	if !ok {
		if len(m.styles) >= maxStyles {
			clear(m.styles)
		}
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		m.styles[c] = st
	}
	return st
}

func renderHUD(frames uint64, columns int, speed float64, paused bool) string {
	sep := styleHudDim.Render("  |  ")
	state := styleHudOk.Render("running")
	if paused {
		state = styleHudWarn.Render("paused")
	}
	return strings.Join([]string{
		state,
		sep,
		styleHudLabel.Render("frames ") + styleHudValue.Render(fmt.Sprintf("%8d", frames)),
		sep,
		styleHudLabel.Render("columns ") + styleHudValue.Render(fmt.Sprintf("%4d", columns)),
		sep,
		styleHudLabel.Render("speed ") + styleHudValue.Render(fmt.Sprintf("%.2fx", speed)),
		styleHudDim.Render("  (space pause, +/- speed, enter intro, h hud, q quit)"),
	}, "")
}

var (
	styleHudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleHudValue = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleHudOk    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9d"))
	styleHudWarn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd33d"))
	styleHudDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
)
