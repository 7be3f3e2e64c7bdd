// Package rollover moves a day forward: routine tasks are cloned to the next
// date and completed tasks of the day are purged, in one transform.
package rollover

import (
	"fmt"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// Plan is what a rollover from From to To will do. It is computed over the
// whole day; timeline filters never apply.
type Plan struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	// Clone holds every routine task of From, done or not.
	Clone []task.Task `json:"clone" yaml:"clone"`
	// Dropped holds the completed one-off tasks of From, for the summary.
	Dropped []task.Task `json:"dropped" yaml:"dropped"`
	// Purge holds every done task of From, routine or not.
	Purge []task.Task `json:"purge" yaml:"purge"`
}

// Preview computes the plan for rolling date over to the next day.
func Preview(tasks []task.Task, date string) (Plan, error) {
	next, err := timeutil.AddDays(date, 1)
	if err != nil {
		return Plan{}, fmt.Errorf("rollover: bad date %q: %w", date, err)
	}
	p := Plan{From: date, To: next}
	for _, t := range tasks {
		if t.Date != date {
			continue
		}
		if t.Routine {
			p.Clone = append(p.Clone, t.Clone())
		}
		if t.IsDone() {
			p.Purge = append(p.Purge, t.Clone())
			if !t.Routine {
				p.Dropped = append(p.Dropped, t.Clone())
			}
		}
	}
	return p, nil
}

// CloneFor copies a routine task onto date as a fresh todo. Everything else,
// notes, comments and attachments included, carries over.
func CloneFor(t task.Task, date string) task.Task {
	c := t.Clone()
	c.ID = task.CloneID(t.ID, date)
	c.Date = date
	c.Reopen()
	return c
}

// Apply returns the task list after the rollover of p.From. It clones every
// routine task of p.From onto p.To, skipping clones whose id already exists,
// then removes every done task dated p.From. Other tasks are untouched and
// keep their order; clones are appended.
func Apply(tasks []task.Task, p Plan) []task.Task {
	ids := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		ids[t.ID] = struct{}{}
	}

	out := make([]task.Task, 0, len(tasks))
	var clones []task.Task
	for _, t := range tasks {
		if t.Date == p.From && t.Routine {
			c := CloneFor(t, p.To)
			if _, dup := ids[c.ID]; !dup {
				ids[c.ID] = struct{}{}
				clones = append(clones, c)
			}
		}
		if t.Date == p.From && t.IsDone() {
			continue
		}
		out = append(out, t)
	}
	return append(out, clones...)
}

// Summary is the preview counts.
type Summary struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Cloned  int    `json:"cloned" yaml:"cloned"`
	Dropped int    `json:"dropped" yaml:"dropped"`
	Purged  int    `json:"purged" yaml:"purged"`
}

// Summary returns the counts a confirmation prompt shows.
func (p Plan) Summary() Summary {
	return Summary{From: p.From, To: p.To, Cloned: len(p.Clone), Dropped: len(p.Dropped), Purged: len(p.Purge)}
}
