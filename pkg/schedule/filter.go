package schedule

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// AllPeople is the person filter wildcard.
const AllPeople = "all"

// Kind selects routine or one-off tasks.
type Kind string

const (
	AllKinds Kind = "all"
	Routine  Kind = "routine"
	OneOff   Kind = "one-off"
)

// ParseKind converts user input into a Kind.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return AllKinds, nil
	case "routine", "r":
		return Routine, nil
	case "one-off", "oneoff", "once", "o":
		return OneOff, nil
	}
	return AllKinds, fmt.Errorf("schedule: unknown task type %q", raw)
}

// Filter narrows a snapshot to what the timeline shows.
type Filter struct {
	Date   string
	Person string
	Kind   Kind
}

func isWildcard(person string) bool {
	p := strings.TrimSpace(person)
	return p == "" || strings.EqualFold(p, AllPeople)
}

// Match reports whether t passes the filter.
func (f Filter) Match(t task.Task) bool {
	if t.Date != f.Date {
		return false
	}
	if !isWildcard(f.Person) && t.Assignee != f.Person && t.Creator != f.Person {
		return false
	}
	switch f.Kind {
	case Routine:
		return t.Routine
	case OneOff:
		return !t.Routine
	}
	return true
}

// Apply returns the matching tasks in input order.
func (f Filter) Apply(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ForDate returns every task dated date, ignoring person and kind.
func ForDate(tasks []task.Task, date string) []task.Task {
	return Filter{Date: date}.Apply(tasks)
}

// Active returns the tasks that are not done.
func Active(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.IsDone() {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns the done tasks.
func Completed(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0)
	for _, t := range tasks {
		if t.IsDone() {
			out = append(out, t)
		}
	}
	return out
}

// IsOverdue reports whether an open task has passed its start. A task that
// starts at the current minute is not yet overdue.
func IsOverdue(t task.Task, now time.Time) bool {
	if t.IsDone() {
		return false
	}
	today := timeutil.DateOf(now)
	if t.Date != today {
		return t.Date < today
	}
	start := t.StartMinute()
	if start < 0 {
		return false
	}
	return timeutil.MinuteOf(now) > start
}

// Overdue returns the overdue tasks dated date.
func Overdue(tasks []task.Task, date string, now time.Time) []task.Task {
	out := make([]task.Task, 0)
	for _, t := range tasks {
		if t.Date == date && IsOverdue(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// OverdueCount counts the overdue tasks dated date.
func OverdueCount(tasks []task.Task, date string, now time.Time) int {
	return len(Overdue(tasks, date, now))
}

// People lists every assignee and creator once, in first-seen order.
func People(tasks []task.Task) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	add := func(name string) {
		if strings.TrimSpace(name) == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, t := range tasks {
		add(t.Assignee)
		add(t.Creator)
	}
	return out
}
