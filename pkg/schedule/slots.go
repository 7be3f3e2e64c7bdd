// Package schedule derives read-only views of a task snapshot: the slotted
// day timeline, filters, overdue state, daily statistics and the month grid.
// Nothing in this package mutates its input.
package schedule

import (
	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

const (
	// SlotMinutes is the width of one timeline row.
	SlotMinutes = 10
	// SlotsPerDay is the number of rows a day always renders.
	SlotsPerDay = timeutil.MinutesPerDay / SlotMinutes
	// OptionMinutes is the step of the start time picker.
	OptionMinutes = 5
)

// Slots returns the labels of every bucket in a day, "00:00" through "23:50".
func Slots() []string {
	return steps(SlotMinutes)
}

// TimeOptions returns the start times offered when creating a task.
func TimeOptions() []string {
	return steps(OptionMinutes)
}

func steps(width int) []string {
	out := make([]string, 0, timeutil.MinutesPerDay/width)
	for m := 0; m < timeutil.MinutesPerDay; m += width {
		out = append(out, timeutil.FormatClock(m))
	}
	return out
}

// BucketOf returns the label of the bucket a start time falls into.
func BucketOf(start string) (string, bool) {
	m, err := timeutil.ParseClock(start)
	if err != nil {
		return "", false
	}
	return timeutil.FormatClock(m / SlotMinutes * SlotMinutes), true
}

// Row is one 10-minute bucket of the timeline.
type Row struct {
	Label string      `json:"label" yaml:"label"`
	Tasks []task.Task `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// Timeline is the full day, one row per bucket in time order.
type Timeline []Row

// Bucket returns the tasks in the row labelled label.
func (tl Timeline) Bucket(label string) []task.Task {
	m, err := timeutil.ParseClock(label)
	if err != nil || m%SlotMinutes != 0 || m/SlotMinutes >= len(tl) {
		return nil
	}
	return tl[m/SlotMinutes].Tasks
}

// Occupied returns only the rows that hold at least one task.
func (tl Timeline) Occupied() Timeline {
	out := make(Timeline, 0)
	for _, r := range tl {
		if len(r.Tasks) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Len counts the tasks across every row.
func (tl Timeline) Len() int {
	n := 0
	for _, r := range tl {
		n += len(r.Tasks)
	}
	return n
}

// Slot buckets the tasks dated date by start time. Every bucket of the day is
// present; tasks keep their input order within a bucket. Tasks with a
// malformed start time are left out.
func Slot(tasks []task.Task, date string) Timeline {
	tl := make(Timeline, SlotsPerDay)
	for i, label := range Slots() {
		tl[i].Label = label
	}
	for _, t := range tasks {
		if t.Date != date {
			continue
		}
		m := t.StartMinute()
		if m < 0 {
			continue
		}
		i := m / SlotMinutes
		tl[i].Tasks = append(tl[i].Tasks, t)
	}
	return tl
}

// Project filters and then slots, the order the timeline view needs.
func Project(tasks []task.Task, f Filter) Timeline {
	return Slot(f.Apply(tasks), f.Date)
}
