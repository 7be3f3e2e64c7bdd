// Package notify decides when a task's reminder is due and delivers it to a
// desktop sink and the in-app toast queue.
package notify

import (
	"fmt"
	"sync"
	"time"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// InWindow reports whether now falls in [start-before, start) of a task dated
// today. Done tasks and tasks without a reminder never qualify.
func InWindow(t task.Task, now time.Time) bool {
	if t.IsDone() || t.NotifyMinutesBefore <= 0 {
		return false
	}
	if t.Date != timeutil.DateOf(now) {
		return false
	}
	start := t.StartMinute()
	if start < 0 {
		return false
	}
	m := timeutil.MinuteOf(now)
	return start-t.NotifyMinutesBefore <= m && m < start
}

// Due returns the tasks whose window contains now and whose id is not in
// fired. It is pure; recording the firing is the caller's job.
func Due(tasks []task.Task, now time.Time, fired map[string]struct{}) []task.Task {
	out := make([]task.Task, 0)
	for _, t := range tasks {
		if _, ok := fired[t.ID]; ok {
			continue
		}
		if InWindow(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// Message is the text shown for a due task.
func Message(t task.Task) string {
	return fmt.Sprintf("Task %q starts in %d minutes", t.Title, t.NotifyMinutesBefore)
}

// Tracker remembers which ids fired on the current calendar day. A tick on a
// new day starts from an empty set. A window skipped entirely (the clock
// jumped over it) is never backfilled.
type Tracker struct {
	mu    sync.Mutex
	date  string
	fired map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{fired: make(map[string]struct{})}
}

// Check returns the tasks newly due at now and records them as fired.
func (tr *Tracker) Check(tasks []task.Task, now time.Time) []task.Task {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if today := timeutil.DateOf(now); today != tr.date {
		tr.date = today
		tr.fired = make(map[string]struct{})
	}
	due := Due(tasks, now, tr.fired)
	for _, t := range due {
		tr.fired[t.ID] = struct{}{}
	}
	return due
}

// Fired reports whether id already fired today.
func (tr *Tracker) Fired(id string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	_, ok := tr.fired[id]
	return ok
}

// Date is the day the fired set belongs to.
func (tr *Tracker) Date() string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.date
}
