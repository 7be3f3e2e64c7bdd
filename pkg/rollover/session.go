package rollover

import (
	"errors"
	"sync"

	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
)

// State is where a rollover session stands.
type State int

const (
	Idle State = iota
	Previewing
	Committing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Previewing:
		return "previewing"
	case Committing:
		return "committing"
	case Done:
		return "done"
	}
	return "unknown"
}

var (
	ErrBusy      = errors.New("rollover: already in progress")
	ErrNoPreview = errors.New("rollover: no preview in progress")
	ErrNotDone   = errors.New("rollover: nothing to finish")
)

// Result is what a commit did.
type Result struct {
	Plan     Plan           `json:"plan" yaml:"plan"`
	Snapshot store.Snapshot `json:"-" yaml:"-"`
	// Removed holds the purged tasks as they were in the store.
	Removed []task.Task `json:"removed" yaml:"removed"`
}

// Session walks idle -> previewing -> committing -> done -> idle. Cancel is
// only possible while previewing and leaves the store untouched.
type Session struct {
	mu    sync.Mutex
	state State
	plan  Plan
	last  Result
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Plan returns the plan being previewed or last committed.
func (s *Session) Plan() Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// Begin previews the rollover of date against the store.
func (s *Session) Begin(st *store.Store, date string) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return Plan{}, ErrBusy
	}
	p, err := Preview(st.Snapshot().Tasks, date)
	if err != nil {
		return Plan{}, err
	}
	s.plan = p
	s.state = Previewing
	return p, nil
}

// Commit applies the previewed plan in a single store transform. The plan is
// recomputed inside the transform so edits made during the preview are
// honoured.
func (s *Session) Commit(st *store.Store) (Result, error) {
	s.mu.Lock()
	if s.state != Previewing {
		s.mu.Unlock()
		return Result{}, ErrNoPreview
	}
	s.state = Committing
	from := s.plan.From
	s.mu.Unlock()

	var (
		plan    Plan
		removed []task.Task
		perr    error
	)
	snap := st.Transform(func(in []task.Task) []task.Task {
		plan, perr = Preview(in, from)
		if perr != nil {
			return in
		}
		removed = plan.Purge
		return Apply(in, plan)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if perr != nil {
		s.state = Previewing
		return Result{}, perr
	}
	s.plan = plan
	s.last = Result{Plan: plan, Snapshot: snap, Removed: removed}
	s.state = Done
	return s.last, nil
}

// Cancel abandons the preview.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Previewing {
		return ErrNoPreview
	}
	s.plan = Plan{}
	s.state = Idle
	return nil
}

// Finish dismisses a completed rollover and returns to idle.
func (s *Session) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Done {
		return ErrNotDone
	}
	s.state = Idle
	return nil
}
