package app

import (
	"context"

	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/task"
)

// RequestDelete marks id as pending deletion. Nothing is removed until
// ConfirmDelete.
func (p *Planner) RequestDelete(id string) (task.Task, error) {
	t, ok := p.Store.Get(id)
	if !ok {
		return task.Task{}, ErrNotFound
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending != "" && p.pending != id {
		return task.Task{}, ErrDeletePending
	}
	p.pending = id
	return t, nil
}

// PendingDelete returns the id awaiting confirmation.
func (p *Planner) PendingDelete() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pending, p.pending != ""
}

// CancelDelete clears the pending marker without touching the store.
func (p *Planner) CancelDelete() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == "" {
		return ErrNoPending
	}
	p.pending = ""
	return nil
}

// ConfirmDelete removes the pending task and releases its attachment
// payloads. A task that vanished in the meantime is reported as ok=false.
func (p *Planner) ConfirmDelete(ctx context.Context) (task.Task, bool, error) {
	p.mu.Lock()
	id := p.pending
	p.pending = ""
	p.mu.Unlock()
	if id == "" {
		return task.Task{}, false, ErrNoPending
	}

	removed, ok := p.Store.Delete(id)
	if !ok {
		return task.Task{}, false, nil
	}
	p.releaseAttachments(removed)
	logging.Info(p.Log, "task_deleted", map[string]any{"task_id": id})
	return removed, true, nil
}

func (p *Planner) releaseAttachments(tasks ...task.Task) {
	if p.Spool == nil {
		return
	}
	var refs []string
	for _, t := range tasks {
		for _, a := range t.Attachments {
			refs = append(refs, a.Ref)
		}
	}
	if len(refs) == 0 {
		return
	}
	if err := p.Spool.Release(p.Store, refs...); err != nil {
		logging.Error(p.Log, "attachment_release_failed", err, nil)
	}
}
