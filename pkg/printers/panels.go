package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/glyph"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/rollover"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/timeutil"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1)
	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Bold(true)
)

// Stats prints the day summary in a bordered panel.
func (pp *PrettyPrint) Stats(s schedule.Stats, overdue int) {
	_, _ = fmt.Fprintln(pp.out(), RenderStats(s, overdue))
	pp.NewLine()
}

// RenderStats returns the day summary panel.
func RenderStats(s schedule.Stats, overdue int) string {
	lines := []string{
		fmt.Sprintf("%s  %d%% done (%d/%d)", s.Date, s.CompletionRate, s.Completed, s.Total),
		progressBar(s.CompletionRate, 20),
		fmt.Sprintf("done %s · remaining %s",
			timeutil.FormatMinutes(s.CompletedMinutes), timeutil.FormatMinutes(s.RemainingMinutes)),
		fmt.Sprintf("routine %d/%d · one-off %d/%d", s.RoutineDone, s.RoutineTotal, s.OneOffDone, s.OneOffTotal),
	}
	if overdue > 0 {
		lines = append(lines, fmt.Sprintf("overdue %d", overdue))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func progressBar(pct, width int) string {
	pct = min(max(pct, 0), 100)
	full := pct * width / 100
	return strings.Repeat("█", full) + strings.Repeat("░", width-full)
}

// Toasts prints each visible toast in a rounded box, with its id above the
// box when ShowID is set.
func (pp *PrettyPrint) Toasts(toasts []notify.Toast) {
	idc := color.New(color.FgHiYellow, color.Italic, color.Faint)
	for _, t := range toasts {
		if pp.ShowID {
			_, _ = idc.Fprintln(pp.out(), t.ID)
		}
		_, _ = fmt.Fprintln(pp.out(), RenderToast(t))
	}
}

// RenderToast returns one toast box.
func RenderToast(t notify.Toast) string {
	return toastStyle.Render(glyph.Reminder + " " + t.Message)
}

// Rollover prints what a pending rollover will do.
func (pp *PrettyPrint) Rollover(p rollover.Plan) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	w := pp.out()

	_, _ = b.Fprintf(w, "Roll %s over to %s\n", p.From, p.To)
	s := p.Summary()
	_, _ = fmt.Fprintf(w, "  %d routine task(s) copied\n", s.Cloned)
	for _, t := range p.Clone {
		_, _ = f.Fprintf(w, "    %s %s %s\n", glyph.Routine, t.StartTime, t.Title)
	}
	_, _ = fmt.Fprintf(w, "  %d completed task(s) cleared\n", s.Purged)
	for _, t := range p.Purge {
		_, _ = f.Fprintf(w, "    ✓ %s %s\n", t.StartTime, t.Title)
	}
	pp.NewLine()
}
