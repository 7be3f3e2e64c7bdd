package tui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dayplan/pkg/glyph"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// sideWidth fits the stats panel, the widest thing in the side column.
const sideWidth = 36

// completedRows caps the done list under the timeline.
const completedRows = 5

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	highStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	frameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Italic(true)
)

func (m *Model) View() string {
	switch m.mode {
	case modeDetail, modeHelp:
		return lipgloss.JoinVertical(lipgloss.Left,
			frameStyle.Render(m.pane.View()),
			faintStyle.Render("esc close · j/k scroll"),
		)
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.timeline.View(),
		m.completedView(),
	)
	side := []string{
		printers.RenderMonth(m.grid),
		printers.RenderStats(m.day.Stats, len(m.day.Overdue)),
	}
	if m.mode == modeRollover {
		var buf bytes.Buffer
		pp := printers.PrettyPrint{Out: &buf}
		pp.Rollover(m.plan)
		side = append(side, strings.TrimRight(buf.String(), "\n"))
	}
	for _, t := range m.toasts {
		side = append(side, printers.RenderToast(t))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.leftWidth()).Render(left),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left, side...),
	)
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), body, m.footer())
}

func (m *Model) header() string {
	date := m.day.Date
	if d, err := time.Parse("2006-01-02", date); err == nil {
		date = d.Format("Mon 2006-01-02")
	}
	who := m.day.Person
	if who == "" {
		who = schedule.AllPeople
	}
	kind := string(m.day.Kind)
	if kind == "" {
		kind = string(schedule.AllKinds)
	}
	return titleStyle.Render("dayplan") + faintStyle.Render(fmt.Sprintf("  %s  %s  showing %s, %s\n",
		date, m.planner.User(), who, kind))
}

func (m *Model) footer() string {
	switch m.mode {
	case modeInput:
		return m.input.View()
	case modeConfirmDelete:
		title := m.target
		if t, err := m.planner.Get(m.target); err == nil {
			title = t.Title
		}
		return titleStyle.Render(fmt.Sprintf("Delete %q? y/n", title))
	case modeRollover:
		return titleStyle.Render(fmt.Sprintf("Roll %s over to %s? y/n", m.plan.From, m.plan.To))
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return faintStyle.Render("a add · space done · m move · d delete · r rollover · ? help · q quit")
}

func (m *Model) leftWidth() int {
	return max(m.width-sideWidth-2, 30)
}

// renderTimeline fills the timeline viewport and scrolls it so the cursor
// row stays visible.
func (m *Model) renderTimeline() {
	h := max(m.height-4-m.completedHeight(), 3)
	m.timeline.SetWidth(m.leftWidth())
	m.timeline.SetHeight(h)

	rows := m.day.Timeline.Occupied()
	if rows.Len() == 0 {
		m.timeline.SetContent(faintStyle.Render("nothing scheduled"))
		m.offset = 0
		m.timeline.SetYOffset(0)
		return
	}

	overdue := make(map[string]bool, len(m.day.Overdue))
	for _, id := range m.day.Overdue {
		overdue[id] = true
	}

	lines := make([]string, 0)
	at := 0
	for _, r := range rows {
		for i, t := range r.Tasks {
			label := "     "
			if i == 0 {
				label = r.Label
			}
			line := fmt.Sprintf("%s  %s %s %s", faintStyle.Render(label), mark(t, overdue[t.ID]), kindMark(t), m.describeTask(t))
			if t.ID == m.selected {
				at = len(lines)
				line = cursorStyle.Render(line)
			}
			lines = append(lines, line)
		}
	}
	m.timeline.SetContent(strings.Join(lines, "\n"))

	if at < m.offset {
		m.offset = at
	}
	if at >= m.offset+h {
		m.offset = at - h + 1
	}
	m.timeline.SetYOffset(m.offset)
}

func (m *Model) describeTask(t task.Task) string {
	s := fmt.Sprintf("%s  %s-%s  %s  %s", t.Title, t.StartTime, t.EndTime(),
		timeutil.FormatMinutes(t.DurationMinutes), t.Assignee)
	if m.showID {
		s = t.ID + "  " + s
	}
	if n := len(t.Attachments); n > 0 {
		s += fmt.Sprintf("  [%d]", n)
	}
	return s
}

func (m *Model) completedView() string {
	done := m.day.Completed
	if len(done) == 0 {
		return ""
	}
	lines := []string{titleStyle.Render(fmt.Sprintf("Completed (%d)", len(done)))}
	for i, t := range done {
		if i == completedRows {
			lines = append(lines, faintStyle.Render(fmt.Sprintf("  and %d more", len(done)-i)))
			break
		}
		by := ""
		if t.CompletedBy != "" {
			by = faintStyle.Render("  by " + t.CompletedBy)
		}
		lines = append(lines, "  "+glyph.Done+" "+doneStyle.Render(t.Title)+by)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) completedHeight() int {
	n := len(m.day.Completed)
	switch {
	case n == 0:
		return 0
	case n > completedRows:
		return completedRows + 2
	}
	return n + 1
}

func mark(t task.Task, late bool) string {
	if late {
		return overdueStyle.Render(glyph.Overdue)
	}
	switch t.Priority {
	case task.High:
		return highStyle.Render(glyph.High)
	case task.Low:
		return faintStyle.Render(glyph.Low)
	}
	return glyph.Medium
}

func kindMark(t task.Task) string {
	if t.Routine {
		return glyph.Routine
	}
	return glyph.OneOff
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
