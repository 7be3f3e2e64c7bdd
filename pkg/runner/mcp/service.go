// Package mcp provides the Model Context Protocol server integration for dayplan.
package mcp

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/rollover"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
)

// Service adapts planner operations to the shapes the MCP server returns.
type Service struct {
	Planner *app.Planner
}

var errNoPlanner = errors.New("planner is not configured")

// AddTaskOptions captures the parameters used to create a new task.
type AddTaskOptions struct {
	Title               string `json:"title"`
	Date                string `json:"date"`
	Start               string `json:"start"`
	Duration            int    `json:"duration"`
	Assignee            string `json:"assignee"`
	Priority            string `json:"priority"`
	Routine             bool   `json:"routine"`
	Notes               string `json:"notes"`
	NotifyMinutesBefore int    `json:"notify_minutes_before"`
}

// UpdateTaskOptions names the fields to change; nil leaves a field alone.
type UpdateTaskOptions struct {
	Title               *string `json:"title,omitempty"`
	Assignee            *string `json:"assignee,omitempty"`
	Priority            *string `json:"priority,omitempty"`
	Duration            *int    `json:"duration,omitempty"`
	Routine             *bool   `json:"routine,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	NotifyMinutesBefore *int    `json:"notify_minutes_before,omitempty"`
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	task.Task
	EndTime string `json:"endTime"`
	Overdue bool   `json:"overdue"`
}

// RowDTO is one occupied timeline row.
type RowDTO struct {
	Slot  string    `json:"slot"`
	Tasks []TaskDTO `json:"tasks"`
}

// DayDTO is the day screen for one date and filter.
type DayDTO struct {
	Date      string         `json:"date"`
	Person    string         `json:"person"`
	Kind      string         `json:"kind"`
	Timeline  []RowDTO       `json:"timeline"`
	Completed []TaskDTO      `json:"completed"`
	Stats     schedule.Stats `json:"stats"`
	Overdue   int            `json:"overdueCount"`
	People    []string       `json:"people"`
}

// RolloverDTO reports a rollover preview or result.
type RolloverDTO struct {
	State   string           `json:"state"`
	Summary rollover.Summary `json:"summary"`
	Clone   []string         `json:"clone"`
	Purge   []string         `json:"purge"`
}

// NewService builds a service over the provided planner.
func NewService(p *app.Planner) *Service {
	return &Service{Planner: p}
}

func (s *Service) planner() (*app.Planner, error) {
	if s.Planner == nil {
		return nil, errNoPlanner
	}
	return s.Planner, nil
}

func (s *Service) toDTO(t task.Task) TaskDTO {
	return TaskDTO{Task: t, EndTime: t.EndTime(), Overdue: s.Planner.IsOverdue(t)}
}

func (s *Service) toDTOs(tasks []task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.toDTO(t))
	}
	return out
}

func (s *Service) result(t task.Task, err error) (*TaskDTO, error) {
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(t)
	return &dto, nil
}

// AddTask creates a task; date defaults to the selected day.
func (s *Service) AddTask(ctx context.Context, opts AddTaskOptions) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	prio, err := task.ParsePriority(opts.Priority)
	if err != nil {
		return nil, err
	}
	return s.result(p.Add(ctx, task.Draft{
		Title:               opts.Title,
		Date:                strings.TrimSpace(opts.Date),
		StartTime:           strings.TrimSpace(opts.Start),
		DurationMinutes:     opts.Duration,
		Assignee:            strings.TrimSpace(opts.Assignee),
		Priority:            prio,
		Routine:             opts.Routine,
		Notes:               opts.Notes,
		NotifyMinutesBefore: opts.NotifyMinutesBefore,
	}))
}

// GetTask fetches a task by id.
func (s *Service) GetTask(ctx context.Context, id string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return s.result(p.Get(id))
}

// UpdateTask applies a partial edit.
func (s *Service) UpdateTask(ctx context.Context, id string, opts UpdateTaskOptions) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	patch := task.Patch{
		Title:               opts.Title,
		Assignee:            opts.Assignee,
		DurationMinutes:     opts.Duration,
		Routine:             opts.Routine,
		Notes:               opts.Notes,
		NotifyMinutesBefore: opts.NotifyMinutesBefore,
	}
	if opts.Priority != nil {
		prio, err := task.ParsePriority(*opts.Priority)
		if err != nil {
			return nil, err
		}
		patch.Priority = &prio
	}
	if patch.Empty() {
		return nil, errors.New("nothing to update")
	}
	return s.result(p.Update(ctx, id, patch))
}

// SetStatus moves a task between todo, in-progress and done.
func (s *Service) SetStatus(ctx context.Context, id, raw string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	status, err := task.ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	return s.result(p.SetStatus(ctx, id, status))
}

// ToggleTask flips a task between todo and done.
func (s *Service) ToggleTask(ctx context.Context, id string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return s.result(p.Toggle(ctx, id))
}

// RescheduleTask moves the start time within the task's own day.
func (s *Service) RescheduleTask(ctx context.Context, id, start string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return s.result(p.Reschedule(ctx, id, start))
}

// CommentTask appends a comment by the acting user.
func (s *Service) CommentTask(ctx context.Context, id, text string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return s.result(p.Comment(ctx, id, text))
}

// RequestDelete marks a task for deletion.
func (s *Service) RequestDelete(ctx context.Context, id string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return s.result(p.RequestDelete(id))
}

// ConfirmDelete removes the pending task.
func (s *Service) ConfirmDelete(ctx context.Context) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	t, ok, err := p.ConfirmDelete(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, app.ErrNotFound
	}
	dto := TaskDTO{Task: t, EndTime: t.EndTime()}
	return &dto, nil
}

// CancelDelete drops the pending deletion.
func (s *Service) CancelDelete(ctx context.Context) error {
	p, err := s.planner()
	if err != nil {
		return err
	}
	return p.CancelDelete()
}

// DayView selects date (when set) and filter and returns the day screen.
func (s *Service) DayView(ctx context.Context, date, person, kind string) (*DayDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	if err := s.selectDate(date); err != nil {
		return nil, err
	}
	if person != "" || kind != "" {
		k, err := schedule.ParseKind(kind)
		if err != nil {
			return nil, err
		}
		p.SetFilter(person, k)
	}

	v := p.Day()
	out := &DayDTO{
		Date:      v.Date,
		Person:    v.Person,
		Kind:      string(v.Kind),
		Timeline:  make([]RowDTO, 0),
		Completed: s.toDTOs(v.Completed),
		Stats:     v.Stats,
		Overdue:   len(v.Overdue),
		People:    v.People,
	}
	for _, r := range v.Timeline.Occupied() {
		out.Timeline = append(out.Timeline, RowDTO{Slot: r.Label, Tasks: s.toDTOs(r.Tasks)})
	}
	return out, nil
}

// Stats returns the summary of date, or of the selected day.
func (s *Service) Stats(ctx context.Context, date string) (*schedule.Stats, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	if err := s.selectDate(date); err != nil {
		return nil, err
	}
	st := p.Stats()
	return &st, nil
}

// Calendar returns the month grid around date, or around the selected day.
func (s *Service) Calendar(ctx context.Context, date string) (*schedule.MonthGrid, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	if err := s.selectDate(date); err != nil {
		return nil, err
	}
	g := p.Calendar()
	return &g, nil
}

func (s *Service) selectDate(date string) error {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil
	}
	return s.Planner.SelectDate(date)
}

// PreviewRollover computes the rollover of date, or of the selected day.
func (s *Service) PreviewRollover(ctx context.Context, date string) (*RolloverDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	if err := s.selectDate(date); err != nil {
		return nil, err
	}
	plan, err := p.BeginRollover(ctx)
	if err != nil {
		return nil, err
	}
	return rolloverDTO(p.RolloverState(), plan), nil
}

// CommitRollover applies the previewed rollover and closes the session.
func (s *Service) CommitRollover(ctx context.Context) (*RolloverDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	res, err := p.CommitRollover(ctx)
	if err != nil {
		return nil, err
	}
	dto := rolloverDTO(p.RolloverState(), res.Plan)
	if err := p.FinishRollover(); err != nil {
		return nil, err
	}
	return dto, nil
}

// CancelRollover abandons a preview.
func (s *Service) CancelRollover(ctx context.Context) error {
	p, err := s.planner()
	if err != nil {
		return err
	}
	return p.CancelRollover()
}

func rolloverDTO(state rollover.State, plan rollover.Plan) *RolloverDTO {
	dto := &RolloverDTO{
		State:   state.String(),
		Summary: plan.Summary(),
		Clone:   make([]string, 0, len(plan.Clone)),
		Purge:   make([]string, 0, len(plan.Purge)),
	}
	for _, t := range plan.Clone {
		dto.Clone = append(dto.Clone, t.Title)
	}
	for _, t := range plan.Purge {
		dto.Purge = append(dto.Purge, t.Title)
	}
	return dto
}

// Toasts returns the visible in-app notifications.
func (s *Service) Toasts(ctx context.Context) ([]notify.Toast, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return p.Toasts(p.Now()), nil
}

// DismissToast hides one toast.
func (s *Service) DismissToast(ctx context.Context, id string) (bool, error) {
	p, err := s.planner()
	if err != nil {
		return false, err
	}
	return p.DismissToast(id), nil
}

// AttachFile decodes a base64 payload and waits for it to be attached.
func (s *Service) AttachFile(ctx context.Context, id, name, mediaType, content string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("content must be base64: %w", err)
	}
	select {
	case err := <-p.AttachFile(ctx, id, app.FileFromBytes(name, mediaType, data)):
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.result(p.Get(id))
}

// RemoveAttachment detaches a file from a task.
func (s *Service) RemoveAttachment(ctx context.Context, id, attID string) (*TaskDTO, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return s.result(p.RemoveAttachment(ctx, id, attID))
}

// People lists the filterable names.
func (s *Service) People(ctx context.Context) ([]string, error) {
	p, err := s.planner()
	if err != nil {
		return nil, err
	}
	return p.People(), nil
}
