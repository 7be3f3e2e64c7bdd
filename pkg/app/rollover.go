package app

import (
	"context"

	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/rollover"
)

// BeginRollover previews the rollover of the selected day.
func (p *Planner) BeginRollover(ctx context.Context) (rollover.Plan, error) {
	if err := ctx.Err(); err != nil {
		return rollover.Plan{}, err
	}
	return p.session.Begin(p.Store, p.SelectedDate())
}

// RolloverState is where the rollover session stands.
func (p *Planner) RolloverState() rollover.State {
	return p.session.State()
}

// RolloverPlan is the plan being previewed or last committed.
func (p *Planner) RolloverPlan() rollover.Plan {
	return p.session.Plan()
}

// CommitRollover applies the previewed rollover and moves the view to the
// next day.
func (p *Planner) CommitRollover(ctx context.Context) (rollover.Result, error) {
	if err := ctx.Err(); err != nil {
		return rollover.Result{}, err
	}
	res, err := p.session.Commit(p.Store)
	if err != nil {
		return rollover.Result{}, err
	}
	p.mu.Lock()
	p.selected = res.Plan.To
	p.mu.Unlock()

	p.releaseAttachments(res.Removed...)
	logging.Info(p.Log, "rollover_committed", map[string]any{
		"from":   res.Plan.From,
		"to":     res.Plan.To,
		"cloned": len(res.Plan.Clone),
		"purged": len(res.Removed),
	})
	return res, nil
}

// CancelRollover abandons the preview; the store is untouched.
func (p *Planner) CancelRollover() error {
	return p.session.Cancel()
}

// FinishRollover dismisses a completed rollover.
func (p *Planner) FinishRollover() error {
	return p.session.Finish()
}

// Rollover previews and commits in one call, for surfaces without a
// confirmation step.
func (p *Planner) Rollover(ctx context.Context) (rollover.Result, error) {
	if _, err := p.BeginRollover(ctx); err != nil {
		return rollover.Result{}, err
	}
	res, err := p.CommitRollover(ctx)
	if err != nil {
		_ = p.CancelRollover()
		return rollover.Result{}, err
	}
	return res, p.FinishRollover()
}
