// Package tui is the full-screen planner: the day timeline beside the month
// calendar and the day's progress, with reminders shown as they fire.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/rollover"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
	modeConfirmDelete
	modeRollover
	modeDetail
	modeHelp
)

type prompt int

const (
	promptAdd prompt = iota
	promptMove
	promptComment
	promptNote
	promptFilter
	promptAttach
	promptDate
)

type tickMsg time.Time

type changedMsg struct{ event store.Event }

type attachedMsg struct {
	id   string
	name string
	err  error
}

// Options tune the screen.
type Options struct {
	// TickPeriod is how often reminders are checked; 0 disables the check.
	TickPeriod time.Duration
	ShowID     bool
}

// Model is the bubbletea model over one Planner.
type Model struct {
	planner *app.Planner
	ctx     context.Context
	cancel  context.CancelFunc
	changes <-chan store.Event
	period  time.Duration
	showID  bool

	width  int
	height int

	mode   mode
	prompt prompt
	target string
	input  textinput.Model

	timeline viewport.Model
	pane     viewport.Model
	offset   int

	day    app.DayView
	grid   schedule.MonthGrid
	order  []task.Task
	cursor int
	// selected follows the task across refreshes, not the row.
	selected string
	toasts   []notify.Toast
	plan     rollover.Plan
	status   string
}

// New returns a model sized for a 100x32 terminal until the first
// WindowSizeMsg arrives.
func New(ctx context.Context, p *app.Planner, opts Options) *Model {
	ctx, cancel := context.WithCancel(ctx)

	in := textinput.New()
	in.Prompt = "> "

	m := &Model{
		planner:  p,
		ctx:      ctx,
		cancel:   cancel,
		period:   opts.TickPeriod,
		showID:   opts.ShowID,
		input:    in,
		timeline: viewport.New(viewport.WithWidth(64), viewport.WithHeight(20)),
		pane:     viewport.New(viewport.WithWidth(96), viewport.WithHeight(28)),
	}
	m.setSize(100, 32)
	return m
}

// Run shows the planner until the user quits or ctx is cancelled.
func Run(ctx context.Context, p *app.Planner, opts Options, programOpts ...tea.ProgramOption) error {
	m := New(ctx, p, opts)
	defer m.cancel()

	prog := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)...)
	go func() {
		<-m.ctx.Done()
		prog.Quit()
	}()
	_, err := prog.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	m.changes = m.planner.Watch(m.ctx)
	return tea.Batch(m.waitForChange(), m.tick())
}

func (m *Model) tick() tea.Cmd {
	if m.period <= 0 {
		return nil
	}
	return tea.Tick(m.period, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg{event: ev}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		// The planner clock decides what is due, not the wall time in msg.
		now := m.planner.Now()
		if fired := m.planner.Tick(m.ctx, now); len(fired) > 0 {
			m.status = plural(len(fired), "reminder") + " due"
		}
		m.refresh()
		return m, m.tick()

	case changedMsg:
		m.refresh()
		return m, m.waitForChange()

	case attachedMsg:
		if msg.err != nil {
			m.status = "attach failed: " + msg.err.Error()
		} else {
			m.status = "attached " + msg.name
		}
		m.refresh()
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.handleKey(msg)
	}

	if m.mode == modeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

// refresh re-reads the day and keeps the cursor on the selected task.
func (m *Model) refresh() {
	m.day = m.planner.Day()
	m.grid = m.planner.Calendar()
	m.toasts = m.planner.Toasts(m.planner.Now())

	order := make([]task.Task, 0)
	for _, row := range m.day.Timeline {
		order = append(order, row.Tasks...)
	}
	m.order = order

	for i, t := range m.order {
		if t.ID == m.selected {
			m.cursor = i
		}
	}
	switch {
	case len(m.order) == 0:
		m.cursor = 0
		m.selected = ""
	case m.cursor >= len(m.order):
		m.cursor = len(m.order) - 1
	case m.cursor < 0:
		m.cursor = 0
	}
	if len(m.order) > 0 {
		m.selected = m.order[m.cursor].ID
	}
	m.renderTimeline()
}

func (m *Model) current() (task.Task, bool) {
	if len(m.order) == 0 {
		return task.Task{}, false
	}
	return m.order[m.cursor], true
}

func (m *Model) move(delta int) {
	if len(m.order) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.order) {
		m.cursor = len(m.order) - 1
	}
	m.selected = m.order[m.cursor].ID
	m.renderTimeline()
}

func (m *Model) setSize(w, h int) {
	m.width, m.height = w, h
	m.pane.SetWidth(max(w-4, 20))
	m.pane.SetHeight(max(h-4, 5))
	m.input.SetWidth(max(w-4, 20))
	m.refresh()
}
