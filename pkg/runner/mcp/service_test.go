package mcp

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/clock"
	"tableflip.dev/dayplan/pkg/store"
)

func newService(t *testing.T) (*Service, *clock.Fake) {
	t.Helper()
	spool, err := store.OpenSpool("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = spool.Close() })

	fake := clock.NewFake(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	p := app.New(app.Options{Clock: fake, Spool: spool, User: "Taro"})
	return NewService(p), fake
}

func TestServiceAddTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Title: "Inbox zero"})
	require.NoError(t, err)
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "2026-10-19", dto.Date)
	assert.Equal(t, "09:00", dto.StartTime)
	assert.Equal(t, "10:00", dto.EndTime)
	assert.Equal(t, "Taro", dto.Creator)
	assert.Equal(t, "Taro", dto.Assignee)
	assert.False(t, dto.Overdue)

	_, err = svc.AddTask(ctx, AddTaskOptions{Title: " "})
	assert.Error(t, err)

	_, err = svc.AddTask(ctx, AddTaskOptions{Title: "x", Priority: "urgent"})
	assert.Error(t, err)
}

func TestServiceStatusAndToggle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Title: "Finish report", Start: "10:15"})
	require.NoError(t, err)

	done, err := svc.SetStatus(ctx, dto.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, "Taro", done.CompletedBy)

	open, err := svc.ToggleTask(ctx, dto.ID)
	require.NoError(t, err)
	assert.Empty(t, open.CompletedBy)

	_, err = svc.SetStatus(ctx, "missing", "done")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestServiceUpdateAndReschedule(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Title: "Draft"})
	require.NoError(t, err)

	title := "Final"
	prio := "high"
	got, err := svc.UpdateTask(ctx, dto.ID, UpdateTaskOptions{Title: &title, Priority: &prio})
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.EqualValues(t, "High", got.Priority)

	_, err = svc.UpdateTask(ctx, dto.ID, UpdateTaskOptions{})
	assert.Error(t, err)

	moved, err := svc.RescheduleTask(ctx, dto.ID, "14:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30", moved.StartTime)
	assert.Equal(t, "2026-10-19", moved.Date)

	_, err = svc.RescheduleTask(ctx, dto.ID, "25:00")
	assert.Error(t, err)
}

func TestServiceDeleteFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Title: "Old"})
	require.NoError(t, err)

	_, err = svc.RequestDelete(ctx, dto.ID)
	require.NoError(t, err)
	require.NoError(t, svc.CancelDelete(ctx))
	_, err = svc.GetTask(ctx, dto.ID)
	require.NoError(t, err)

	_, err = svc.RequestDelete(ctx, dto.ID)
	require.NoError(t, err)
	deleted, err := svc.ConfirmDelete(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, deleted.ID)

	_, err = svc.GetTask(ctx, dto.ID)
	assert.ErrorIs(t, err, app.ErrNotFound)
	_, err = svc.ConfirmDelete(ctx)
	assert.ErrorIs(t, err, app.ErrNoPending)
}

func TestServiceDayViewFilters(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.AddTask(ctx, AddTaskOptions{Title: "Stand-up", Start: "09:05", Routine: true})
	require.NoError(t, err)
	_, err = svc.AddTask(ctx, AddTaskOptions{Title: "Dentist", Start: "15:00", Assignee: "Hanako"})
	require.NoError(t, err)

	day, err := svc.DayView(ctx, "", "", "")
	require.NoError(t, err)
	require.Len(t, day.Timeline, 2)
	assert.Equal(t, "09:00", day.Timeline[0].Slot)
	assert.Equal(t, 2, day.Stats.Total)
	assert.ElementsMatch(t, []string{"Taro", "Hanako"}, day.People)

	day, err = svc.DayView(ctx, "", "Hanako", "")
	require.NoError(t, err)
	require.Len(t, day.Timeline, 1)
	assert.Equal(t, "Dentist", day.Timeline[0].Tasks[0].Title)
	assert.Equal(t, 2, day.Stats.Total)

	day, err = svc.DayView(ctx, "", "all", "routine")
	require.NoError(t, err)
	require.Len(t, day.Timeline, 1)
	assert.Equal(t, "Stand-up", day.Timeline[0].Tasks[0].Title)

	_, err = svc.DayView(ctx, "19-10-2026", "", "")
	assert.Error(t, err)
	_, err = svc.DayView(ctx, "", "", "weekly")
	assert.Error(t, err)
}

func TestServiceRollover(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	routine, err := svc.AddTask(ctx, AddTaskOptions{Title: "Stand-up", Routine: true})
	require.NoError(t, err)
	once, err := svc.AddTask(ctx, AddTaskOptions{Title: "Ship"})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, once.ID, "done")
	require.NoError(t, err)

	preview, err := svc.PreviewRollover(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "previewing", preview.State)
	assert.Equal(t, []string{"Stand-up"}, preview.Clone)
	assert.Equal(t, []string{"Ship"}, preview.Purge)

	res, err := svc.CommitRollover(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", res.Summary.To)

	_, err = svc.GetTask(ctx, routine.ID+"-2026-10-20")
	require.NoError(t, err)
	_, err = svc.GetTask(ctx, once.ID)
	assert.ErrorIs(t, err, app.ErrNotFound)

	assert.Error(t, svc.CancelRollover(ctx))
}

func TestServiceAttachFile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Title: "Receipts"})
	require.NoError(t, err)

	content := base64.StdEncoding.EncodeToString([]byte("hello"))
	got, err := svc.AttachFile(ctx, dto.ID, "note.txt", "text/plain", content)
	require.NoError(t, err)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "note.txt", got.Attachments[0].Name)

	_, err = svc.AttachFile(ctx, dto.ID, "bad.bin", "", "%%%")
	assert.Error(t, err)

	got, err = svc.RemoveAttachment(ctx, dto.ID, got.Attachments[0].ID)
	require.NoError(t, err)
	assert.Empty(t, got.Attachments)
}

func TestServiceToasts(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Title: "Call", Start: "08:10", NotifyMinutesBefore: 15})
	require.NoError(t, err)

	fired := svc.Planner.Tick(ctx, fake.Now())
	require.Len(t, fired, 1)
	assert.Equal(t, dto.ID, fired[0].ID)

	toasts, err := svc.Toasts(ctx)
	require.NoError(t, err)
	require.Len(t, toasts, 1)

	ok, err := svc.DismissToast(ctx, toasts[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, svc.Planner.Tick(ctx, fake.Now()))
}

func TestServiceRequiresPlanner(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.GetTask(context.Background(), "1")
	assert.Error(t, err)
}
