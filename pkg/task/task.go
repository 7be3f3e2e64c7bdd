// Package task defines the task record shared by the store, the schedule
// projections and the rollover engine.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/dayplan/pkg/timeutil"
)

// Priority ranks a task.
type Priority string

const (
	Low    Priority = "Low"
	Medium Priority = "Medium"
	High   Priority = "High"
)

// ParsePriority converts user input into a Priority, defaulting to Medium.
func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return Medium, nil
	case "low", "l":
		return Low, nil
	case "medium", "med", "m":
		return Medium, nil
	case "high", "h":
		return High, nil
	}
	return Medium, fmt.Errorf("task: unknown priority %q", raw)
}

// Status is the column a task sits in.
type Status string

const (
	Todo Status = "todo"
	// InProgress is reserved; nothing in the planner moves tasks into it.
	InProgress Status = "in-progress"
	Done       Status = "done"
)

// ParseStatus converts user input into a Status.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo", "open":
		return Todo, nil
	case "in-progress", "doing":
		return InProgress, nil
	case "done", "complete", "completed":
		return Done, nil
	}
	return Todo, fmt.Errorf("task: unknown status %q", raw)
}

// Comment is one message in a task's thread.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Author    string    `json:"author" yaml:"author"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Attachment references a spooled payload.
type Attachment struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	MediaType string `json:"type" yaml:"type"`
	Ref       string `json:"ref" yaml:"ref"`
	Size      int64  `json:"size,omitempty" yaml:"size,omitempty"`
}

// IsImage reports whether the attachment should be previewed inline.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.MediaType, "image/")
}

// Task is a single scheduled item on a calendar day.
type Task struct {
	ID                  string       `json:"id" yaml:"id"`
	Title               string       `json:"title" yaml:"title"`
	Assignee            string       `json:"assignee" yaml:"assignee"`
	Creator             string       `json:"creator" yaml:"creator"`
	Priority            Priority     `json:"priority" yaml:"priority"`
	Status              Status       `json:"status" yaml:"status"`
	Date                string       `json:"date" yaml:"date"`
	StartTime           string       `json:"startTime" yaml:"startTime"`
	DurationMinutes     int          `json:"durationMinutes" yaml:"durationMinutes"`
	Routine             bool         `json:"isRoutine" yaml:"isRoutine"`
	Notes               string       `json:"notes,omitempty" yaml:"notes,omitempty"`
	Comments            []Comment    `json:"comments,omitempty" yaml:"comments,omitempty"`
	Attachments         []Attachment `json:"attachments,omitempty" yaml:"attachments,omitempty"`
	CompletedBy         string       `json:"completedBy,omitempty" yaml:"completedBy,omitempty"`
	NotifyMinutesBefore int          `json:"notificationMinutesBefore,omitempty" yaml:"notificationMinutesBefore,omitempty"`
}

var (
	ErrTitleRequired = errors.New("task: title required")
	ErrBadDate       = errors.New("task: date must be YYYY-MM-DD")
	ErrBadStart      = errors.New("task: start time must be HH:MM")
	ErrBadDuration   = errors.New("task: duration must be positive")
	ErrBadStatus     = errors.New("task: status must be todo, in-progress or done")
)

// NewID mints an opaque id. It contains no '-', so it is its own clone prefix.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// IsDone reports whether the task is completed.
func (t Task) IsDone() bool {
	return t.Status == Done
}

// StartMinute returns the start time as minutes since midnight, or -1 when
// the start time is malformed.
func (t Task) StartMinute() int {
	m, err := timeutil.ParseClock(t.StartTime)
	if err != nil {
		return -1
	}
	return m
}

// EndTime returns the "HH:MM" the task finishes at, wrapping past midnight.
func (t Task) EndTime() string {
	start := t.StartMinute()
	if start < 0 {
		return ""
	}
	return timeutil.FormatClock(start + t.DurationMinutes)
}

// Validate checks the fields a stored task must carry.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if !timeutil.ValidDate(t.Date) {
		return ErrBadDate
	}
	if _, err := timeutil.ParseClock(t.StartTime); err != nil {
		return ErrBadStart
	}
	if t.DurationMinutes <= 0 {
		return ErrBadDuration
	}
	switch t.Status {
	case Todo, InProgress, Done:
	default:
		return ErrBadStatus
	}
	return nil
}

// UnknownActor stands in for a completion with no acting user, keeping
// CompletedBy set whenever the task is done.
const UnknownActor = "unknown"

// Complete marks the task done by actor.
func (t *Task) Complete(actor string) {
	if strings.TrimSpace(actor) == "" {
		actor = UnknownActor
	}
	t.Status = Done
	t.CompletedBy = actor
}

// Reopen moves the task back to todo and forgets who completed it.
func (t *Task) Reopen() {
	t.Status = Todo
	t.CompletedBy = ""
}

// Clone returns a deep copy; slices are never shared with the original.
func (t Task) Clone() Task {
	out := t
	if len(t.Comments) > 0 {
		out.Comments = append([]Comment(nil), t.Comments...)
	} else {
		out.Comments = nil
	}
	if len(t.Attachments) > 0 {
		out.Attachments = append([]Attachment(nil), t.Attachments...)
	} else {
		out.Attachments = nil
	}
	return out
}

// ClonePrefix returns the stable part of an id that survives rollover.
func ClonePrefix(id string) string {
	prefix, _, _ := strings.Cut(id, "-")
	return prefix
}

// CloneID derives the id a rolled-over copy of id receives on date.
func CloneID(id, date string) string {
	return ClonePrefix(id) + "-" + date
}
