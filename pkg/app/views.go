package app

import (
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// DayView is everything the day screen shows for the selected date.
type DayView struct {
	Date      string            `json:"date" yaml:"date"`
	Person    string            `json:"person" yaml:"person"`
	Kind      schedule.Kind     `json:"kind" yaml:"kind"`
	Timeline  schedule.Timeline `json:"timeline" yaml:"timeline"`
	Completed []task.Task       `json:"completed" yaml:"completed"`
	Stats     schedule.Stats    `json:"stats" yaml:"stats"`
	Overdue   []string          `json:"overdue" yaml:"overdue"`
	People    []string          `json:"people" yaml:"people"`
}

// Day projects the current snapshot for the selected date. The timeline and
// completed list honour the filter; the stats and overdue count cover the
// whole day.
func (p *Planner) Day() DayView {
	tasks := p.Store.Snapshot().Tasks
	f := p.Filter()
	now := p.Clock.Now()
	filtered := f.Apply(tasks)

	overdue := make([]string, 0)
	for _, t := range schedule.Overdue(tasks, f.Date, now) {
		overdue = append(overdue, t.ID)
	}
	return DayView{
		Date:      f.Date,
		Person:    f.Person,
		Kind:      f.Kind,
		Timeline:  schedule.Slot(schedule.Active(filtered), f.Date),
		Completed: schedule.Completed(filtered),
		Stats:     schedule.ComputeStats(tasks, f.Date),
		Overdue:   overdue,
		People:    schedule.People(tasks),
	}
}

// Timeline is the filtered, slotted open tasks of the selected day.
func (p *Planner) Timeline() schedule.Timeline {
	f := p.Filter()
	return schedule.Slot(schedule.Active(f.Apply(p.Store.Snapshot().Tasks)), f.Date)
}

// ActiveTasks are the filtered open tasks of the selected day.
func (p *Planner) ActiveTasks() []task.Task {
	return schedule.Active(p.Filter().Apply(p.Store.Snapshot().Tasks))
}

// CompletedTasks are the filtered done tasks of the selected day.
func (p *Planner) CompletedTasks() []task.Task {
	return schedule.Completed(p.Filter().Apply(p.Store.Snapshot().Tasks))
}

// Stats covers every task of the selected day.
func (p *Planner) Stats() schedule.Stats {
	return schedule.ComputeStats(p.Store.Snapshot().Tasks, p.SelectedDate())
}

// Overdue lists the overdue tasks of the selected day.
func (p *Planner) Overdue() []task.Task {
	return schedule.Overdue(p.Store.Snapshot().Tasks, p.SelectedDate(), p.Clock.Now())
}

// IsOverdue reports whether t is overdue now.
func (p *Planner) IsOverdue(t task.Task) bool {
	return schedule.IsOverdue(t, p.Clock.Now())
}

// People lists every name that can be filtered on.
func (p *Planner) People() []string {
	return schedule.People(p.Store.Snapshot().Tasks)
}

// Calendar is the month grid around the selected date.
func (p *Planner) Calendar() schedule.MonthGrid {
	selected := p.SelectedDate()
	g, err := schedule.Month(selected, selected, timeutil.DateOf(p.Clock.Now()), p.Store.Snapshot().Tasks)
	if err != nil {
		// selected is always a valid date.
		return schedule.MonthGrid{}
	}
	return g
}
