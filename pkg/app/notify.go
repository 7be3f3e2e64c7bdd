package app

import (
	"context"
	"time"

	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/task"
)

// Tick runs one reminder check at now: newly due tasks are recorded as fired,
// queued as toasts and handed to the desktop sink. It returns the tasks that
// fired.
func (p *Planner) Tick(ctx context.Context, now time.Time) []task.Task {
	due := p.tracker.Check(p.Store.Snapshot().Tasks, now)
	if len(due) == 0 {
		return due
	}
	notices := make([]notify.Notice, 0, len(due))
	for _, t := range due {
		notices = append(notices, notify.NoticeFor(t, now))
		logging.Info(p.Log, "task_reminder", map[string]any{"task_id": t.ID, "start": t.StartTime})
	}
	p.dispatcher.Dispatch(ctx, notices, now)
	return due
}

// RunTicker calls Tick on the notification cadence until ctx is done.
func (p *Planner) RunTicker(ctx context.Context, period time.Duration) error {
	return notify.Run(ctx, p.Clock, period, func(ctx context.Context, now time.Time) {
		p.Tick(ctx, now)
	})
}

// Toasts returns the visible in-app notifications at now.
func (p *Planner) Toasts(now time.Time) []notify.Toast {
	return p.toasts.Active(now)
}

// DismissToast hides a toast. Reminders already fired stay fired.
func (p *Planner) DismissToast(id string) bool {
	return p.toasts.Dismiss(id)
}
