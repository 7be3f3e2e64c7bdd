package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dayplan/pkg/glyph"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// PrettyPrint renders planner views for a terminal.
type PrettyPrint struct {
	ShowID bool
	// ShowEmpty prints every 10-minute row, not just the occupied ones.
	ShowEmpty bool
	// Width wraps notes and comments; 0 means 72.
	Width int
	Out   io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 72
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Timeline prints the slotted day. overdue marks ids to flag.
func (pp *PrettyPrint) Timeline(tl schedule.Timeline, overdue map[string]bool) {
	rows := tl
	if !pp.ShowEmpty {
		rows = tl.Occupied()
	}
	if rows.Len() == 0 && !pp.ShowEmpty {
		pp.none()
		return
	}

	slot := color.New(color.Faint)
	late := color.New(color.FgRed, color.Bold)
	idc := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	for _, r := range rows {
		if len(r.Tasks) == 0 {
			tbl.AddRow(slot.Sprint(r.Label))
			continue
		}
		for i, t := range r.Tasks {
			label := ""
			if i == 0 {
				label = slot.Sprint(r.Label)
			}
			mark := priorityMark(t.Priority)
			if overdue[t.ID] {
				mark = late.Sprint(glyph.Overdue)
			}
			cells := []interface{}{label, mark}
			if pp.ShowID {
				cells = append(cells, idc.Sprint(t.ID))
			}
			cells = append(cells,
				kindMark(t)+" "+t.Title,
				fmt.Sprintf("%s-%s", t.StartTime, t.EndTime()),
				timeutil.FormatMinutes(t.DurationMinutes),
				t.Assignee,
			)
			tbl.AddRow(cells...)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Completed prints the done list with who completed each task.
func (pp *PrettyPrint) Completed(tasks []task.Task) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	strike := color.New(color.CrossedOut, color.Faint)
	by := color.New(color.Italic, color.Faint)
	idc := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		cells := []interface{}{glyph.Done}
		if pp.ShowID {
			cells = append(cells, idc.Sprint(t.ID))
		}
		cells = append(cells, strike.Sprint(t.Title), t.StartTime, by.Sprintf("by %s", t.CompletedBy))
		tbl.AddRow(cells...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Task prints the detail view of a single task.
func (pp *PrettyPrint) Task(t task.Task, overdue bool) {
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	w := pp.out()

	_, _ = b.Fprintln(w, t.Title)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(f.Sprint("id"), t.ID)
	tbl.AddRow(f.Sprint("when"), fmt.Sprintf("%s %s-%s (%s)", t.Date, t.StartTime, t.EndTime(), timeutil.FormatMinutes(t.DurationMinutes)))
	tbl.AddRow(f.Sprint("assignee"), t.Assignee)
	tbl.AddRow(f.Sprint("creator"), t.Creator)
	tbl.AddRow(f.Sprint("priority"), string(t.Priority))
	status := string(t.Status)
	if t.IsDone() {
		status += " by " + t.CompletedBy
	} else if overdue {
		status += color.New(color.FgRed).Sprint(" (overdue)")
	}
	tbl.AddRow(f.Sprint("status"), status)
	if t.Routine {
		tbl.AddRow(f.Sprint("type"), "routine")
	} else {
		tbl.AddRow(f.Sprint("type"), "one-off")
	}
	if t.NotifyMinutesBefore > 0 {
		tbl.AddRow(f.Sprint("remind"), fmt.Sprintf("%d minutes before", t.NotifyMinutesBefore))
	}
	_, _ = fmt.Fprintln(w, tbl)

	if strings.TrimSpace(t.Notes) != "" {
		pp.NewLine()
		_, _ = b.Fprintln(w, "Notes")
		_, _ = fmt.Fprintln(w, wordwrap.String(t.Notes, pp.width()))
	}

	if len(t.Comments) > 0 {
		pp.NewLine()
		_, _ = b.Fprintf(w, "Comments (%d)\n", len(t.Comments))
		for _, c := range t.Comments {
			_, _ = f.Fprintf(w, "%s  %s\n", c.Author, c.CreatedAt.Format("2006-01-02 15:04"))
			_, _ = fmt.Fprintln(w, indent(wordwrap.String(c.Text, pp.width()-2), "  "))
		}
	}

	if len(t.Attachments) > 0 {
		pp.NewLine()
		_, _ = b.Fprintf(w, "Attachments (%d)\n", len(t.Attachments))
		at := uitable.New()
		at.Separator = "  "
		for _, a := range t.Attachments {
			icon := "📄"
			if a.IsImage() {
				icon = "🖼"
			}
			at.AddRow(icon, a.ID, a.Name, a.MediaType, humanSize(a.Size))
		}
		_, _ = fmt.Fprintln(w, at)
	}
	pp.NewLine()
}

// List prints one indented item per line.
func (pp *PrettyPrint) List(items []string) {
	if len(items) == 0 {
		pp.none()
		return
	}
	for _, item := range items {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", item)
	}
	pp.NewLine()
}

func priorityMark(p task.Priority) string {
	switch p {
	case task.High:
		return color.New(color.FgHiRed).Sprint(glyph.High)
	case task.Low:
		return color.New(color.Faint).Sprint(glyph.Low)
	}
	return glyph.Medium
}

func kindMark(t task.Task) string {
	if t.Routine {
		return glyph.Routine
	}
	return glyph.OneOff
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func humanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
