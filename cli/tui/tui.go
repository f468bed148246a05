package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/justapithecus/photodrop/types"
)

// State is the submission state shown by the view.
type State string

// Submission states.
const (
	StateSending     State = "sending"
	StateDelivered   State = "delivered"
	StateUnconfirmed State = "unconfirmed"
	StateFailed      State = "failed"
)

// StateOf maps an outcome to its display state. A nil outcome is still
// sending.
func StateOf(o *types.Outcome) State {
	switch {
	case o == nil:
		return StateSending
	case o.Unconfirmed():
		return StateUnconfirmed
	case o.OK():
		return StateDelivered
	default:
		return StateFailed
	}
}

// Info describes what is being submitted.
type Info struct {
	File     *types.CandidateFile
	Endpoint string
	Comment  string
}

type outcomeMsg struct {
	outcome *types.Outcome
}

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "cancel"),
	),
}

// SubmitModel is the Bubble Tea model for one submission.
type SubmitModel struct {
	info     Info
	spinner  spinner.Model
	cancel   context.CancelFunc
	started  time.Time
	elapsed  time.Duration
	outcome  *types.Outcome
	canceled bool
}

// NewSubmitModel creates the model. cancel aborts the in-flight submission
// when the user quits; it may be nil.
func NewSubmitModel(info Info, cancel context.CancelFunc) SubmitModel {
	return SubmitModel{
		info:    info,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(WarningStyle)),
		cancel:  cancel,
		started: time.Now(),
	}
}

// Init implements tea.Model.
func (m SubmitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m SubmitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		m.outcome = msg.outcome
		m.elapsed = time.Since(m.started)
		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && m.outcome == nil {
			m.canceled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.outcome != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Outcome returns the received outcome, or nil while sending.
func (m SubmitModel) Outcome() *types.Outcome {
	return m.outcome
}

// View implements tea.Model.
func (m SubmitModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("photodrop"))
	b.WriteString("\n")
	if f := m.info.File; f != nil {
		b.WriteString(field("File", f.Name))
		b.WriteString(field("Type", f.MimeType))
		b.WriteString(field("Size", humanize.IBytes(uint64(max(f.Size, 0)))))
	}
	if m.info.Endpoint != "" {
		b.WriteString(field("To", endpointHost(m.info.Endpoint)))
	}
	if m.info.Comment != "" {
		b.WriteString(field("Comment", m.info.Comment))
	}
	b.WriteString("\n")

	state := StateOf(m.outcome)
	style := StateStyle(state)

	switch {
	case m.canceled:
		b.WriteString(ErrorStyle.Render("Canceled."))
	case state == StateSending:
		b.WriteString(m.spinner.View() + " " + style.Render("Sending..."))
	case state == StateDelivered:
		msg := "Sent!"
		if m.outcome.ReceiptID != "" {
			msg = fmt.Sprintf("Sent! Receipt %s", m.outcome.ReceiptID)
		}
		b.WriteString(style.Render(msg))
	case state == StateUnconfirmed:
		b.WriteString(style.Render("Sent (confirmation pending)."))
	default:
		b.WriteString(style.Render("Failed: " + m.outcome.Reason))
	}

	if m.outcome != nil {
		b.WriteString("\n")
		b.WriteString(field("Took", m.elapsed.Round(time.Millisecond).String()))
	}

	out := BoxStyle.Render(b.String())
	if m.outcome == nil && !m.canceled {
		out += "\n" + HelpStyle.Render("Press q or Ctrl+C to cancel")
	}
	return out + "\n"
}

func endpointHost(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return endpoint
}

func field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value) + "\n"
}

// RunSubmit shows the status view while send runs, and returns send's
// outcome. Quitting early calls cancel and still waits for send to return.
func RunSubmit(info Info, send func() *types.Outcome, cancel context.CancelFunc, opts ...tea.ProgramOption) (*types.Outcome, error) {
	p := tea.NewProgram(NewSubmitModel(info, cancel), opts...)

	done := make(chan *types.Outcome, 1)
	go func() {
		o := send()
		done <- o
		p.Send(outcomeMsg{outcome: o})
	}()

	_, err := p.Run()
	return <-done, err
}
