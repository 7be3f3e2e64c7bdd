// Package schedule prints one day of the planner.
package schedule

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/printers"
	sched "tableflip.dev/dayplan/pkg/schedule"
)

// Schedule renders the day view for Date after applying the filter.
type Schedule struct {
	Planner *app.Planner
	Date    string
	Person  string
	Kind    sched.Kind

	ShowID       bool
	ShowEmpty    bool
	ShowCalendar bool
	Format       printers.Format
	Out          io.Writer
}

func (n *Schedule) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

func (n *Schedule) Do(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.Date != "" {
		if err := n.Planner.SelectDate(n.Date); err != nil {
			return err
		}
	}
	if n.Person != "" || n.Kind != "" {
		n.Planner.SetFilter(n.Person, n.Kind)
	}
	day := n.Planner.Day()

	if n.Format.Structured() {
		day.Timeline = day.Timeline.Occupied()
		out := struct {
			app.DayView `yaml:",inline"`
			Calendar    *sched.MonthGrid `json:"calendar,omitempty" yaml:"calendar,omitempty"`
		}{DayView: day}
		if n.ShowCalendar {
			g := n.Planner.Calendar()
			out.Calendar = &g
		}
		return printers.Encode(n.out(), n.Format, out)
	}

	overdue := make(map[string]bool, len(day.Overdue))
	for _, id := range day.Overdue {
		overdue[id] = true
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, ShowEmpty: n.ShowEmpty, Out: n.out()}
	title := day.Date
	if day.Person != sched.AllPeople || day.Kind != sched.AllKinds {
		title += " (" + day.Person + ", " + string(day.Kind) + ")"
	}
	active := 0
	for _, r := range day.Timeline {
		active += len(r.Tasks)
	}
	pp.TitleWithCount(title, active)
	pp.Timeline(day.Timeline, overdue)
	pp.TitleWithCount("Completed", len(day.Completed))
	pp.Completed(day.Completed)
	pp.Stats(day.Stats, len(day.Overdue))
	if n.ShowCalendar {
		pp.Calendar(n.Planner.Calendar())
	}
	return nil
}

// Slots prints the 10-minute timeline labels, or the 5-minute start options.
type Slots struct {
	Options bool
	Format  printers.Format
	Out     io.Writer
}

func (n *Slots) Do(ctx context.Context) error {
	labels := sched.Slots()
	if n.Options {
		labels = sched.TimeOptions()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Format.Structured() {
		return printers.Encode(out, n.Format, labels)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.List(labels)
	return nil
}
