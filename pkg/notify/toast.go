package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultToastTTL is how long a toast stays visible.
const DefaultToastTTL = 5 * time.Second

// Toast is an in-app notification.
type Toast struct {
	ID      string    `json:"id" yaml:"id"`
	TaskID  string    `json:"taskId" yaml:"taskId"`
	Message string    `json:"message" yaml:"message"`
	Expires time.Time `json:"expires" yaml:"expires"`
}

// Toasts is the visible toast queue. It is independent from Tracker:
// dismissing or expiring a toast never re-arms a reminder.
type Toasts struct {
	mu    sync.Mutex
	ttl   time.Duration
	items []Toast
}

// NewToasts returns a queue whose toasts live for ttl, DefaultToastTTL when
// ttl is not positive.
func NewToasts(ttl time.Duration) *Toasts {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Toasts{ttl: ttl}
}

// Push queues a toast created at now.
func (q *Toasts) Push(n Notice, now time.Time) Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := Toast{
		ID:      uuid.NewString(),
		TaskID:  n.TaskID,
		Message: n.Message,
		Expires: now.Add(q.ttl),
	}
	q.items = append(q.items, t)
	return t
}

// Dismiss removes a toast before it expires.
func (q *Toasts) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.items {
		if t.ID == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// Active drops expired toasts and returns the rest, oldest first.
func (q *Toasts) Active(now time.Time) []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, t := range q.items {
		if now.Before(t.Expires) {
			kept = append(kept, t)
		}
	}
	q.items = kept
	return append([]Toast(nil), kept...)
}
