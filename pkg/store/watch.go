package store

import (
	"context"
)

// EventType describes the nature of a store change notification.
type EventType int

const (
	// EventAdded indicates a new task was created.
	EventAdded EventType = iota
	// EventUpdated indicates a single task was replaced.
	EventUpdated
	// EventDeleted indicates a task was removed.
	EventDeleted
	// EventTransformed signals a whole-list replacement (rollover) and
	// callers should refresh their full view.
	EventTransformed
	// EventSeeded signals a bulk load.
	EventSeeded
)

func (t EventType) String() string {
	switch t {
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventDeleted:
		return "deleted"
	case EventTransformed:
		return "transformed"
	case EventSeeded:
		return "seeded"
	}
	return "unknown"
}

// Event is emitted by Store.Watch after every committed change.
type Event struct {
	Type     EventType
	TaskID   string
	Snapshot Snapshot
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than block a mutation. The
// channel is closed once ctx is done.
func (s *Store) Watch(ctx context.Context) <-chan Event {
	events := make(chan Event, 64)

	s.mu.Lock()
	id := s.nextW
	s.nextW++
	s.watchers[id] = events
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		close(events)
		s.mu.Unlock()
	}()

	return events
}
