// Package app is the planner service every surface drives. It owns the task
// store, the selected day and filters, the delete and rollover state
// machines, and the reminder pipeline.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tableflip.dev/dayplan/pkg/clock"
	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/rollover"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/timeutil"
)

var (
	ErrNotFound      = errors.New("app: task not found")
	ErrNoPending     = errors.New("app: no task pending deletion")
	ErrDeletePending = errors.New("app: another task is pending deletion")
	ErrNoSpool       = errors.New("app: no attachment spool configured")
)

// Options configures a Planner. Zero values get working defaults.
type Options struct {
	Store    *store.Store
	Spool    *store.Spool
	Clock    clock.Clock
	Log      *slog.Logger
	User     string
	Sink     notify.Sink
	ToastTTL time.Duration
}

// Planner provides high-level operations over the task store so the shell,
// the MCP server and one-shot commands share the same logic.
type Planner struct {
	Store *store.Store
	Spool *store.Spool
	Clock clock.Clock
	Log   *slog.Logger

	tracker    *notify.Tracker
	toasts     *notify.Toasts
	dispatcher *notify.Dispatcher
	session    rollover.Session

	mu       sync.RWMutex
	user     string
	selected string
	person   string
	kind     schedule.Kind
	pending  string
}

// New builds a planner anchored on today.
func New(o Options) *Planner {
	if o.Store == nil {
		o.Store = store.New()
	}
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Log == nil {
		o.Log = logging.Discard()
	}
	toasts := notify.NewToasts(o.ToastTTL)
	p := &Planner{
		Store:   o.Store,
		Spool:   o.Spool,
		Clock:   o.Clock,
		Log:     o.Log,
		tracker: notify.NewTracker(),
		toasts:  toasts,
		dispatcher: &notify.Dispatcher{
			Sink:   o.Sink,
			Toasts: toasts,
			Log:    o.Log,
		},
		user:     strings.TrimSpace(o.User),
		selected: timeutil.DateOf(o.Clock.Now()),
		person:   schedule.AllPeople,
		kind:     schedule.AllKinds,
	}
	return p
}

// User is the identity stamped on completions and comments.
func (p *Planner) User() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

// SetUser changes the acting user.
func (p *Planner) SetUser(name string) {
	p.mu.Lock()
	p.user = strings.TrimSpace(name)
	p.mu.Unlock()
}

// Now is the planner clock's current time.
func (p *Planner) Now() time.Time {
	return p.Clock.Now()
}

// Watch subscribes to store change events.
func (p *Planner) Watch(ctx context.Context) <-chan store.Event {
	return p.Store.Watch(ctx)
}

// SelectedDate is the day the views are anchored on.
func (p *Planner) SelectedDate() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selected
}

// SelectDate moves the view to date.
func (p *Planner) SelectDate(date string) error {
	if !timeutil.ValidDate(date) {
		return errors.New("app: date must be YYYY-MM-DD")
	}
	p.mu.Lock()
	p.selected = date
	p.mu.Unlock()
	return nil
}

// Today moves the view to the clock's current day.
func (p *Planner) Today() string {
	today := timeutil.DateOf(p.Clock.Now())
	p.mu.Lock()
	p.selected = today
	p.mu.Unlock()
	return today
}

// NextDay moves the view forward one day.
func (p *Planner) NextDay() string {
	return p.shiftDay(1)
}

// PrevDay moves the view back one day.
func (p *Planner) PrevDay() string {
	return p.shiftDay(-1)
}

func (p *Planner) shiftDay(n int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if next, err := timeutil.AddDays(p.selected, n); err == nil {
		p.selected = next
	}
	return p.selected
}

// NextMonth moves the view to day 1 of the following month.
func (p *Planner) NextMonth() string {
	return p.shiftMonth(schedule.NextMonth)
}

// PrevMonth moves the view to day 1 of the previous month.
func (p *Planner) PrevMonth() string {
	return p.shiftMonth(schedule.PrevMonth)
}

func (p *Planner) shiftMonth(fn func(string) (string, error)) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if next, err := fn(p.selected); err == nil {
		p.selected = next
	}
	return p.selected
}

// SetFilter narrows the timeline by person and kind. An empty person means
// everyone.
func (p *Planner) SetFilter(person string, kind schedule.Kind) {
	if strings.TrimSpace(person) == "" {
		person = schedule.AllPeople
	}
	if kind == "" {
		kind = schedule.AllKinds
	}
	p.mu.Lock()
	p.person, p.kind = person, kind
	p.mu.Unlock()
}

// Filter returns the active timeline filter for the selected date.
func (p *Planner) Filter() schedule.Filter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return schedule.Filter{Date: p.selected, Person: p.person, Kind: p.kind}
}
