package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/fchimpan/matrix-rain/internal/contact"
)

// SendFunc delivers a validated form.
type SendFunc func(ctx context.Context, f contact.Form) error

type ContactOptions struct {
	Send    SendFunc
	Timeout time.Duration
	Logger  *zap.Logger
}

const defaultSendTimeout = 15 * time.Second

// focus slots; the last one is the submit button.
const (
	focusName = iota
	focusEmail
	focusMessage
	focusSubmit
	focusCount
)

type ContactModel struct {
	send    SendFunc
	timeout time.Duration
	log     *zap.Logger

	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   int

	errs      contact.Errors
	sending   bool
	status    string
	statusErr bool
	width     int
}

type sentMsg struct{ err error }

func NewContactModel(opts ContactOptions) *ContactModel {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultSendTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254

	msg := textarea.New()
	msg.Placeholder = "Tell me about your project..."
	msg.CharLimit = 5000
	msg.ShowLineNumbers = false
	msg.SetHeight(5)

	m := &ContactModel{
		send:    opts.Send,
		timeout: opts.Timeout,
		log:     opts.Logger,
		name:    name,
		email:   email,
		message: msg,
		width:   60,
	}
	m.name.Focus()
	return m
}

func (m *ContactModel) Init() tea.Cmd { return textinput.Blink }

func (m *ContactModel) Form() contact.Form {
	return contact.Form{
		Name:    m.name.Value(),
		Email:   m.email.Value(),
		Message: m.message.Value(),
	}
}

func (m *ContactModel) Sending() bool { return m.sending }
func (m *ContactModel) Status() string { return m.status }
func (m *ContactModel) Errors() contact.Errors { return m.errs }

func (m *ContactModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(max(msg.Width-4, 20), 80)
		m.name.Width = m.width - 2
		m.email.Width = m.width - 2
		m.message.SetWidth(m.width)
		return m, nil
	case sentMsg:
		m.sending = false
		if msg.err != nil {
			m.log.Warn("contact send failed", zap.Error(msg.err))
			m.status = contact.MsgSendFailed
			m.statusErr = true
			return m, nil
		}
		m.log.Info("contact message sent")
		m.status = contact.MsgSent
		m.statusErr = false
		m.reset()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m, m.setFocus((m.focus + 1) % focusCount)
		case "shift+tab":
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		case "ctrl+s":
			return m, m.submit()
		case "enter":
			switch m.focus {
			case focusSubmit:
				return m, m.submit()
			case focusName, focusEmail:
				return m, m.setFocus(m.focus + 1)
			}
		}
	}
	return m, m.updateFocused(msg)
}

func (m *ContactModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusEmail:
		m.email, cmd = m.email.Update(msg)
	case focusMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return cmd
}

func (m *ContactModel) setFocus(f int) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()
	switch f {
	case focusName:
		return m.name.Focus()
	case focusEmail:
		return m.email.Focus()
	case focusMessage:
		return m.message.Focus()
	}
	return nil
}

// submit validates and starts a send. It is a no-op while a send is in flight.
func (m *ContactModel) submit() tea.Cmd {
	if m.sending {
		return nil
	}
	form := m.Form()
	m.errs = contact.Validate(form)
	if !m.errs.OK() {
		m.status = ""
		return nil
	}
	if m.send == nil {
		m.status = contact.MsgSendFailed
		m.statusErr = true
		return nil
	}
	m.sending = true
	m.status = ""
	send, timeout := m.send, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return sentMsg{err: send(ctx, form)}
	}
}

func (m *ContactModel) reset() {
	m.name.Reset()
	m.email.Reset()
	m.message.Reset()
	m.errs = nil
	m.setFocus(focusName)
}

var (
	styleFormTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9d"))
	styleFormLabel  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleFormError  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff7b72"))
	styleFormOk     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9d"))
	styleButton     = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#0d1117")).Background(lipgloss.Color("#00cc7a"))
	styleButtonIdle = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#d0d7de")).Background(lipgloss.Color("#30363d"))
	styleButtonBusy = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#6e7681")).Background(lipgloss.Color("#21262d"))
)

func (m *ContactModel) View() string {
	var b strings.Builder
	b.WriteString(styleFormTitle.Render("Get In Touch"))
	b.WriteString("\n\n")

	field := func(label string, f contact.Field, view string) {
		b.WriteString(styleFormLabel.Render(label))
		b.WriteByte('\n')
		b.WriteString(view)
		b.WriteByte('\n')
		if msg, ok := m.errs[f]; ok {
			b.WriteString(styleFormError.Render(msg))
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	field("Name", contact.FieldName, m.name.View())
	field("Email", contact.FieldEmail, m.email.View())
	field("Message", contact.FieldMessage, m.message.View())

	switch {
	case m.sending:
		b.WriteString(styleButtonBusy.Render("Sending..."))
	case m.focus == focusSubmit:
		b.WriteString(styleButton.Render("Send Message"))
	default:
		b.WriteString(styleButtonIdle.Render("Send Message"))
	}
	b.WriteString("\n\n")

	if m.status != "" {
		st := styleFormOk
		if m.statusErr {
			st = styleFormError
		}
		b.WriteString(lipgloss.NewStyle().Width(m.width).Render(st.Render(m.status)))
		b.WriteString("\n\n")
	}
	b.WriteString(styleHudDim.Render("tab next field, ctrl+s send, esc quit"))
	b.WriteByte('\n')
	return b.String()
}
