package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/dayplan/pkg/schedule"
)

const width = len("11 12 13 14 15 16 17") // an example week

var (
	headerStyle   = lipgloss.NewStyle().Faint(true)
	emptyStyle    = lipgloss.NewStyle().Faint(true)
	entryStyle    = lipgloss.NewStyle().Bold(true)
	todayStyle    = lipgloss.NewStyle().Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

// Calendar prints a Sunday-first month grid. Days with tasks are bold, today
// is underlined and the selected day is reversed.
func (pp *PrettyPrint) Calendar(g schedule.MonthGrid) {
	_, _ = fmt.Fprintln(pp.out(), RenderMonth(g))
	pp.NewLine()
}

// RenderMonth returns the month grid as text.
func RenderMonth(g schedule.MonthGrid) string {
	title := fmt.Sprintf("%s %d", g.Month, g.Year)
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	lines := []string{
		lipgloss.NewStyle().Italic(true).Render(strings.Repeat(" ", mid) + title),
		headerStyle.Render("Su Mo Tu We Th Fr Sa"),
	}
	for _, week := range g.Weeks() {
		cells := make([]string, 0, 7)
		for _, d := range week {
			cells = append(cells, renderDay(d))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(d schedule.Day) string {
	if d.Day == 0 {
		return "  "
	}
	style := emptyStyle
	if d.HasTasks {
		style = entryStyle
	}
	if d.Today {
		style = style.Inherit(todayStyle)
	}
	if d.Selected {
		style = style.Inherit(selectedStyle)
	}
	return style.Render(fmt.Sprintf("%2d", d.Day))
}
