// Package store holds the canonical, in-memory set of tasks for one planner.
package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"tableflip.dev/dayplan/pkg/task"
)

var (
	// ErrTitleRequired is returned by Add when the draft has no title; nothing
	// is stored.
	ErrTitleRequired = task.ErrTitleRequired
	// ErrDuplicateID is returned when a seeded task reuses an existing id.
	ErrDuplicateID = errors.New("store: duplicate task id")
)

// Snapshot is an immutable copy of the store contents at one version.
type Snapshot struct {
	Version uint64
	Tasks   []task.Task
}

// Find returns the task with id from the snapshot.
func (s Snapshot) Find(id string) (task.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Store owns the task list. Every operation runs under one lock and replaces
// the affected record wholesale, so readers never observe a partial update.
// Operations on an unknown id are silent no-ops reported as ok=false.
type Store struct {
	mu       sync.RWMutex
	tasks    []task.Task
	version  uint64
	newID    func() string
	watchers map[int]chan Event
	nextW    int
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides id minting, mostly for tests.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		newID:    task.NewID,
		watchers: make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed inserts fully formed tasks, keeping their ids.
func (s *Store) Seed(tasks ...task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		t = t.Clone()
		if t.Status == "" {
			t.Status = task.Todo
		}
		if err := t.Validate(); err != nil {
			return err
		}
		if s.indexOf(t.ID) >= 0 {
			return ErrDuplicateID
		}
		if !t.IsDone() {
			t.CompletedBy = ""
		} else if t.CompletedBy == "" {
			t.CompletedBy = task.UnknownActor
		}
		s.tasks = append(s.tasks, t)
	}
	s.commit(EventSeeded, "")
	return nil
}

// Snapshot returns a copy of every task in insertion order.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Get returns a copy of the task with id.
func (s *Store) Get(id string) (task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Add creates a todo task from draft and returns the stored copy.
func (s *Store) Add(d task.Draft) (task.Task, error) {
	if strings.TrimSpace(d.Title) == "" {
		return task.Task{}, ErrTitleRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	t := d.Build(id)
	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	s.tasks = append(s.tasks, t)
	s.commit(EventAdded, t.ID)
	return t.Clone(), nil
}

// Update applies patch to the task with id. An invalid patch leaves the task
// untouched and reports the validation error.
func (s *Store) Update(id string, p task.Patch) (task.Task, bool, error) {
	var perr error
	t, ok := s.mutate(id, func(t *task.Task) bool {
		if p.Empty() {
			return false
		}
		if err := p.Apply(t); err != nil {
			perr = err
			return false
		}
		return true
	})
	return t, ok, perr
}

// SetStatus moves the task to status. Done stamps CompletedBy with actor;
// anything else clears it.
func (s *Store) SetStatus(id string, status task.Status, actor string) (task.Task, bool) {
	return s.mutate(id, func(t *task.Task) bool {
		switch {
		case status == task.Done && t.IsDone():
			return false
		case status == task.Done:
			t.Complete(actor)
		default:
			if t.Status == status && t.CompletedBy == "" {
				return false
			}
			t.Status = status
			t.CompletedBy = ""
		}
		return true
	})
}

// Toggle flips the task between todo and done.
func (s *Store) Toggle(id string, actor string) (task.Task, bool) {
	return s.mutate(id, func(t *task.Task) bool {
		if t.IsDone() {
			t.Reopen()
		} else {
			t.Complete(actor)
		}
		return true
	})
}

// Move reports what a Reschedule did, read under the same lock as the write.
type Move struct {
	Task     task.Task
	From     string
	Reopened bool
}

// Reschedule changes the start time only; the date never moves. A done task
// is reopened, since completion belonged to the old slot.
func (s *Store) Reschedule(id string, start string) (Move, bool, error) {
	var (
		perr error
		mv   Move
	)
	t, ok := s.mutate(id, func(t *task.Task) bool {
		mv.From = t.StartTime
		next := start
		if err := (task.Patch{StartTime: &next}).Apply(t); err != nil {
			perr = err
			return false
		}
		if t.IsDone() {
			t.Reopen()
			mv.Reopened = true
		}
		return true
	})
	mv.Task = t
	return mv, ok, perr
}

// Delete removes the task and returns what was removed.
func (s *Store) Delete(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.commit(EventDeleted, id)
	return removed, true
}

// AddComment appends a comment stamped at the given minute. Blank text is ignored.
func (s *Store) AddComment(id, text, author string, at time.Time) (task.Task, bool) {
	if strings.TrimSpace(text) == "" {
		return s.Get(id)
	}
	return s.mutate(id, func(t *task.Task) bool {
		t.Comments = append(t.Comments, task.Comment{
			ID:        task.NewID(),
			Author:    author,
			Text:      text,
			CreatedAt: at.Truncate(time.Minute),
		})
		return true
	})
}

// AddAttachment appends att, minting its id when empty.
func (s *Store) AddAttachment(id string, att task.Attachment) (task.Task, bool) {
	return s.mutate(id, func(t *task.Task) bool {
		if att.ID == "" {
			att.ID = task.NewID()
		}
		for _, existing := range t.Attachments {
			if existing.ID == att.ID {
				att.ID = task.NewID()
				break
			}
		}
		t.Attachments = append(t.Attachments, att)
		return true
	})
}

// RemoveAttachment drops the attachment with attID and returns it.
func (s *Store) RemoveAttachment(id, attID string) (task.Task, task.Attachment, bool) {
	var removed task.Attachment
	t, ok := s.mutate(id, func(t *task.Task) bool {
		out := make([]task.Attachment, 0, len(t.Attachments))
		for _, a := range t.Attachments {
			if a.ID == attID {
				removed = a
				continue
			}
			out = append(out, a)
		}
		if removed.ID == "" {
			return false
		}
		if len(out) == 0 {
			out = nil
		}
		t.Attachments = out
		return true
	})
	return t, removed, ok && removed.ID != ""
}

// Transform replaces the whole task list with fn's result in one step. fn
// receives a private copy and must not retain it.
func (s *Store) Transform(fn func([]task.Task) []task.Task) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	in := make([]task.Task, len(s.tasks))
	for i, t := range s.tasks {
		in[i] = t.Clone()
	}
	out := fn(in)
	s.tasks = make([]task.Task, 0, len(out))
	for _, t := range out {
		s.tasks = append(s.tasks, t.Clone())
	}
	s.commit(EventTransformed, "")
	return s.snapshotLocked()
}

// Refs returns every attachment ref still held by some task.
func (s *Store) Refs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	refs := make(map[string]struct{})
	for _, t := range s.tasks {
		for _, a := range t.Attachments {
			refs[a.Ref] = struct{}{}
		}
	}
	return refs
}

func (s *Store) mutate(id string, fn func(*task.Task) bool) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	next := s.tasks[i].Clone()
	if fn(&next) {
		s.tasks[i] = next
		s.commit(EventUpdated, id)
	}
	return s.tasks[i].Clone(), true
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() Snapshot {
	out := make([]task.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return Snapshot{Version: s.version, Tasks: out}
}

// commit bumps the version and notifies watchers. Callers hold s.mu.
func (s *Store) commit(typ EventType, id string) {
	s.version++
	if len(s.watchers) == 0 {
		return
	}
	ev := Event{Type: typ, TaskID: id, Snapshot: s.snapshotLocked()}
	for _, ch := range s.watchers {
		select {
		case ch <- ev:
		default:
			// Drop the event for a slow consumer; the next one carries a
			// full snapshot anyway.
		}
	}
}
