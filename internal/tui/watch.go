// internal/tui/watch.go
// Package tui renders the interactive view behind 'trench watch': a live
// countdown of simulation time toward a target, racing the wait outcome.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/trench/internal/timewait"
	"github.com/mwiater/trench/internal/util"
)

// connState tracks the health of the display polls. It is cosmetic; the
// waiter alone decides the terminal outcome.
type connState int

const (
	connConnecting connState = iota
	connOnline
	connDegraded
)

// readingMsg carries one successful display poll.
type readingMsg struct {
	raw     string
	current time.Time
}

// readingErr is a failed display poll.
type readingErr struct{ error }

// outcomeMsg delivers the waiter's terminal outcome.
type outcomeMsg struct{ outcome timewait.Outcome }

// pollTickMsg schedules the next display poll.
type pollTickMsg time.Time

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	onlineStyle   = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	degradedStyle = lipgloss.NewStyle().Background(lipgloss.Color("124")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	waitingStyle  = lipgloss.NewStyle().Background(lipgloss.Color("240")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	reachedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Config wires the watch view to a time source and the wait parameters.
type Config struct {
	Target       string
	Source       timewait.TimeSource
	PollInterval time.Duration
	Timeout      time.Duration
}

// Model is the Bubble Tea model for the watch view.
type Model struct {
	target     string
	targetTime time.Time
	targetOK   bool
	source     timewait.TimeSource
	outcomeCh  <-chan timewait.Outcome
	cancel     context.CancelFunc
	pollEvery  time.Duration

	spinner  spinner.Model
	progress progress.Model

	simStart time.Time
	simNow   time.Time
	haveBase bool
	conn     connState
	outcome  *timewait.Outcome
	aborted  bool
	width    int
}

// NewModel starts the wait in the background and returns the view over it.
// The returned cancel func abandons the wait; the view calls it on abort.
func NewModel(ctx context.Context, cfg Config) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	waiter := &timewait.Waiter{
		Source:       cfg.Source,
		PollInterval: cfg.PollInterval,
		Timeout:      cfg.Timeout,
	}
	waitCtx, cancel := context.WithCancel(ctx)

	pollEvery := cfg.PollInterval
	if pollEvery <= 0 {
		pollEvery = timewait.DefaultPollInterval
	}

	targetTime, err := timewait.ParseTimestamp(cfg.Target)

	return &Model{
		target:     cfg.Target,
		targetTime: targetTime,
		targetOK:   err == nil,
		source:     cfg.Source,
		outcomeCh:  waiter.Go(waitCtx, cfg.Target),
		cancel:     cancel,
		pollEvery:  pollEvery,
		spinner:    s,
		progress:   progress.New(progress.WithDefaultGradient()),
	}
}

// Init starts the spinner, the outcome race, and the display polls.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForOutcome(m.outcomeCh), pollSource(m.source))
}

// waitForOutcome blocks on the waiter's channel.
func waitForOutcome(ch <-chan timewait.Outcome) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: <-ch}
	}
}

// pollSource performs one display poll of the time source.
func pollSource(source timewait.TimeSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		raw, err := source.CurrentTime(ctx)
		if err != nil {
			return readingErr{err}
		}
		current, err := timewait.ParseTimestamp(raw)
		if err != nil {
			return readingErr{err}
		}
		return readingMsg{raw: raw, current: current}
	}
}

func (m *Model) nextPoll() tea.Cmd {
	return tea.Tick(m.pollEvery, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.aborted = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = util.Min(util.Max(msg.Width-10, 10), 60)
		return m, nil

	case outcomeMsg:
		m.outcome = &msg.outcome
		return m, tea.Quit

	case readingMsg:
		m.conn = connOnline
		m.simNow = msg.current
		if !m.haveBase {
			m.simStart = msg.current
			m.haveBase = true
		}
		return m, m.nextPoll()

	case readingErr:
		m.conn = connDegraded
		return m, m.nextPoll()

	case pollTickMsg:
		return m, pollSource(m.source)

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

// fraction reports progress from the first observed reading to the target.
func (m *Model) fraction() float64 {
	if !m.haveBase || !m.targetOK {
		return 0
	}
	total := m.targetTime.Sub(m.simStart)
	if total <= 0 {
		return 1
	}
	f := float64(m.simNow.Sub(m.simStart)) / float64(total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// badge renders the connection-state indicator.
func (m *Model) badge() string {
	switch m.conn {
	case connOnline:
		return onlineStyle.Render("ONLINE")
	case connDegraded:
		return degradedStyle.Render("DEGRADED")
	default:
		return waitingStyle.Render("CONNECTING")
	}
}

// View renders the watch screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Waiting for simulation time %s", m.target)))
	b.WriteString("  ")
	b.WriteString(m.badge())
	b.WriteString("\n\n")

	if m.outcome != nil {
		style := failedStyle
		if m.outcome.Kind == timewait.OutcomeReached {
			style = reachedStyle
		}
		line := m.outcome.String()
		if m.width > 8 {
			line = util.WrapToWidth(line, m.width-4)
		}
		b.WriteString("  " + style.Render(line) + "\n")
		return b.String()
	}

	if m.haveBase {
		b.WriteString(fmt.Sprintf("  %s simulation time %s", m.spinner.View(), m.simNow.Format(time.RFC3339)))
		if m.targetOK {
			remaining := m.targetTime.Sub(m.simNow)
			if remaining > 0 {
				b.WriteString(fmt.Sprintf("  (%s of simulated time remaining)", remaining.Round(time.Second)))
			}
		}
		b.WriteString("\n\n  ")
		b.WriteString(m.progress.ViewAs(m.fraction()))
		b.WriteString("\n")
	} else {
		b.WriteString(fmt.Sprintf("  %s contacting time source...\n", m.spinner.View()))
	}

	b.WriteString("\n" + helpStyle.Render("  q to abort"))
	return b.String()
}

// Outcome returns the waiter's terminal outcome, if one arrived.
func (m *Model) Outcome() (timewait.Outcome, bool) {
	if m.outcome == nil {
		return timewait.Outcome{}, false
	}
	return *m.outcome, true
}

// Aborted reports whether the user abandoned the wait.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Run drives the watch view to completion. The bool reports a user abort;
// when it is false the Outcome is the waiter's terminal result.
func Run(ctx context.Context, cfg Config) (timewait.Outcome, bool, error) {
	model := NewModel(ctx, cfg)
	defer model.cancel()

	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return timewait.Outcome{}, false, fmt.Errorf("watch view failed: %w", err)
	}

	fm, ok := final.(*Model)
	if !ok {
		return timewait.Outcome{}, false, fmt.Errorf("unexpected final model type %T", final)
	}
	if outcome, done := fm.Outcome(); done {
		return outcome, false, nil
	}
	return timewait.Outcome{}, fm.Aborted(), nil
}
