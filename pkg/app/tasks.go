package app

import (
	"context"
	"errors"

	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
)

// Get returns the task with id.
func (p *Planner) Get(id string) (task.Task, error) {
	t, ok := p.Store.Get(id)
	if !ok {
		return task.Task{}, ErrNotFound
	}
	return t, nil
}

// Add creates a task. The date defaults to the selected day and the creator
// to the acting user.
func (p *Planner) Add(ctx context.Context, d task.Draft) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if d.Date == "" {
		d.Date = p.SelectedDate()
	}
	if d.Creator == "" {
		d.Creator = p.User()
	}
	t, err := p.Store.Add(d)
	if err != nil {
		return task.Task{}, err
	}
	logging.Info(p.Log, "task_added", map[string]any{"task_id": t.ID, "date": t.Date, "start": t.StartTime})
	return t, nil
}

// Update applies a partial edit. A status change to done is stamped with
// the acting user unless the patch names one.
func (p *Planner) Update(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if patch.Actor == "" {
		patch.Actor = p.User()
	}
	t, ok, err := p.Store.Update(id, patch)
	if err != nil {
		return task.Task{}, err
	}
	if !ok {
		return task.Task{}, ErrNotFound
	}
	return t, nil
}

// SetNotes replaces the task notes.
func (p *Planner) SetNotes(ctx context.Context, id, notes string) (task.Task, error) {
	return p.Update(ctx, id, task.Patch{Notes: &notes})
}

// SetStatus moves a task to status as the acting user.
func (p *Planner) SetStatus(ctx context.Context, id string, status task.Status) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	t, ok := p.Store.SetStatus(id, status, p.User())
	if !ok {
		return task.Task{}, ErrNotFound
	}
	logging.Info(p.Log, "task_status", map[string]any{"task_id": id, "status": string(t.Status)})
	return t, nil
}

// Toggle flips a task between todo and done as the acting user.
func (p *Planner) Toggle(ctx context.Context, id string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	t, ok := p.Store.Toggle(id, p.User())
	if !ok {
		return task.Task{}, ErrNotFound
	}
	logging.Info(p.Log, "task_status", map[string]any{"task_id": id, "status": string(t.Status)})
	return t, nil
}

// Reschedule moves a task to start within its own day. A done task is
// reopened.
func (p *Planner) Reschedule(ctx context.Context, id, start string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	mv, ok, err := p.Store.Reschedule(id, start)
	if !ok {
		return task.Task{}, ErrNotFound
	}
	if err != nil {
		return task.Task{}, err
	}
	logging.Info(p.Log, "task_rescheduled", map[string]any{
		"task_id":  id,
		"from":     mv.From,
		"to":       mv.Task.StartTime,
		"reopened": mv.Reopened,
	})
	return mv.Task, nil
}

// Comment appends a comment by the acting user. Blank text changes nothing.
func (p *Planner) Comment(ctx context.Context, id, text string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	t, ok := p.Store.AddComment(id, text, p.User(), p.Clock.Now())
	if !ok {
		return task.Task{}, ErrNotFound
	}
	return t, nil
}

// IsNotFound reports whether err means the task no longer exists.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTitleRequired reports whether err is a rejected empty title.
func IsTitleRequired(err error) bool {
	return errors.Is(err, store.ErrTitleRequired)
}
