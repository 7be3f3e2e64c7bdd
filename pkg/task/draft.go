package task

import (
	"strings"

	"tableflip.dev/dayplan/pkg/timeutil"
)

// Draft is the input for creating a task.
type Draft struct {
	Title               string
	Assignee            string
	Creator             string
	Priority            Priority
	Date                string
	StartTime           string
	DurationMinutes     int
	Routine             bool
	Notes               string
	Attachments         []Attachment
	NotifyMinutesBefore int
}

// Defaults for the creation form.
const (
	DefaultStart    = "09:00"
	DefaultDuration = 60
)

// Build turns the draft into a todo task with the given id. Optional fields
// fall back to the creation-form defaults.
func (d Draft) Build(id string) Task {
	t := Task{
		ID:              id,
		Title:           strings.TrimSpace(d.Title),
		Assignee:        d.Assignee,
		Creator:         d.Creator,
		Priority:        d.Priority,
		Status:          Todo,
		Date:            d.Date,
		StartTime:       d.StartTime,
		DurationMinutes: d.DurationMinutes,
		Routine:         d.Routine,
		Notes:           d.Notes,
	}
	if t.Priority == "" {
		t.Priority = Medium
	}
	if t.StartTime == "" {
		t.StartTime = DefaultStart
	} else if norm, err := timeutil.NormalizeClock(t.StartTime); err == nil {
		t.StartTime = norm
	}
	if t.DurationMinutes == 0 {
		t.DurationMinutes = DefaultDuration
	}
	if t.Assignee == "" {
		t.Assignee = t.Creator
	}
	if t.Creator == "" {
		t.Creator = t.Assignee
	}
	if len(d.Attachments) > 0 {
		t.Attachments = append([]Attachment(nil), d.Attachments...)
	}
	if d.NotifyMinutesBefore > 0 {
		t.NotifyMinutesBefore = d.NotifyMinutesBefore
	}
	return t
}

// Patch represents a partial update.
// nil pointer => "no change".
type Patch struct {
	Title               *string   `json:"title,omitempty"`
	Assignee            *string   `json:"assignee,omitempty"`
	Creator             *string   `json:"creator,omitempty"`
	Priority            *Priority `json:"priority,omitempty"`
	Status              *Status   `json:"status,omitempty"`
	StartTime           *string   `json:"startTime,omitempty"`
	DurationMinutes     *int      `json:"durationMinutes,omitempty"`
	Routine             *bool     `json:"isRoutine,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	NotifyMinutesBefore *int      `json:"notificationMinutesBefore,omitempty"`

	// Actor is recorded as CompletedBy when Status moves to done.
	Actor string `json:"-"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Assignee == nil && p.Creator == nil &&
		p.Priority == nil && p.Status == nil && p.StartTime == nil &&
		p.DurationMinutes == nil && p.Routine == nil && p.Notes == nil &&
		p.NotifyMinutesBefore == nil
}

// Apply copies the named fields onto t. The result must still pass Validate;
// on error t is left unchanged.
func (p Patch) Apply(t *Task) error {
	next := t.Clone()
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Assignee != nil {
		next.Assignee = *p.Assignee
	}
	if p.Creator != nil {
		next.Creator = *p.Creator
	}
	if p.Priority != nil {
		next.Priority = *p.Priority
	}
	if p.StartTime != nil {
		norm, err := timeutil.NormalizeClock(*p.StartTime)
		if err != nil {
			return ErrBadStart
		}
		next.StartTime = norm
	}
	if p.DurationMinutes != nil {
		next.DurationMinutes = *p.DurationMinutes
	}
	if p.Routine != nil {
		next.Routine = *p.Routine
	}
	if p.Notes != nil {
		next.Notes = *p.Notes
	}
	if p.NotifyMinutesBefore != nil {
		next.NotifyMinutesBefore = max(*p.NotifyMinutesBefore, 0)
	}
	if p.Status != nil {
		switch *p.Status {
		case Done:
			if !next.IsDone() {
				next.Complete(p.Actor)
			}
		default:
			next.Status = *p.Status
			next.CompletedBy = ""
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}
