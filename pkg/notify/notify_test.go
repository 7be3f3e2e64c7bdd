package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dayplan/pkg/clock"
	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/task"
)

func reminder(id, start string, before int) task.Task {
	t := task.Draft{Title: "Standup", Date: "2026-10-19", StartTime: start}.Build(id)
	t.NotifyMinutesBefore = before
	return t
}

func TestInWindowBounds(t *testing.T) {
	tk := reminder("a", "10:00", 10)
	at := func(h, m int) time.Time { return time.Date(2026, 10, 19, h, m, 0, 0, time.UTC) }

	assert.False(t, InWindow(tk, at(9, 49)))
	assert.True(t, InWindow(tk, at(9, 50)))
	assert.True(t, InWindow(tk, at(9, 59)))
	assert.False(t, InWindow(tk, at(10, 0)))

	assert.False(t, InWindow(reminder("b", "10:00", 0), at(9, 55)))

	tk.Complete("Taro")
	assert.False(t, InWindow(tk, at(9, 55)))

	other := reminder("c", "10:00", 10)
	other.Date = "2026-10-20"
	assert.False(t, InWindow(other, at(9, 55)))
}

func TestTrackerFiresOncePerDayAcrossTicks(t *testing.T) {
	tasks := []task.Task{reminder("a", "10:00", 10)}
	tr := NewTracker()

	fires := 0
	start := time.Date(2026, 10, 19, 9, 45, 0, 0, time.UTC)
	end := time.Date(2026, 10, 19, 10, 5, 0, 0, time.UTC)
	for now := start; now.Before(end); now = now.Add(10 * time.Second) {
		fires += len(tr.Check(tasks, now))
	}
	assert.Equal(t, 1, fires)
	assert.True(t, tr.Fired("a"))
}

func TestTrackerResetsOnNewDay(t *testing.T) {
	tr := NewTracker()
	tk := reminder("a", "10:00", 10)
	require.Len(t, tr.Check([]task.Task{tk}, time.Date(2026, 10, 19, 9, 55, 0, 0, time.UTC)), 1)

	tk.Date = "2026-10-20"
	assert.Len(t, tr.Check([]task.Task{tk}, time.Date(2026, 10, 20, 9, 55, 0, 0, time.UTC)), 1)
	assert.Equal(t, "2026-10-20", tr.Date())
}

func TestTrackerDoesNotBackfillSkippedWindow(t *testing.T) {
	tr := NewTracker()
	tasks := []task.Task{reminder("a", "10:00", 10)}

	assert.Empty(t, tr.Check(tasks, time.Date(2026, 10, 19, 9, 40, 0, 0, time.UTC)))
	// The clock jumps over the whole window.
	assert.Empty(t, tr.Check(tasks, time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)))
}

func TestMessage(t *testing.T) {
	tk := reminder("a", "10:00", 15)
	tk.Title = "Daily scrum"
	assert.Equal(t, `Task "Daily scrum" starts in 15 minutes`, Message(tk))
}

func TestToastsExpireAndDismiss(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 50, 0, 0, time.UTC)
	q := NewToasts(0)

	a := q.Push(Notice{TaskID: "a", Message: "a"}, now)
	q.Push(Notice{TaskID: "b", Message: "b"}, now.Add(3*time.Second))

	require.Len(t, q.Active(now.Add(4*time.Second)), 2)
	require.True(t, q.Dismiss(a.ID))
	assert.False(t, q.Dismiss(a.ID))

	active := q.Active(now.Add(4 * time.Second))
	require.Len(t, active, 1)
	assert.Equal(t, "b", active[0].TaskID)

	assert.Empty(t, q.Active(now.Add(8*time.Second)))
}

func TestToastDismissDoesNotRearm(t *testing.T) {
	tr := NewTracker()
	q := NewToasts(time.Second)
	tasks := []task.Task{reminder("a", "10:00", 10)}
	now := time.Date(2026, 10, 19, 9, 51, 0, 0, time.UTC)

	due := tr.Check(tasks, now)
	require.Len(t, due, 1)
	toast := q.Push(NoticeFor(due[0], now), now)
	q.Dismiss(toast.ID)

	assert.Empty(t, tr.Check(tasks, now.Add(10*time.Second)))
}

type recordingSink struct {
	mu  sync.Mutex
	got []Notice
	err error
}

func (s *recordingSink) Notify(_ context.Context, n Notice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, n)
	return s.err
}

func TestDispatcherAlwaysToasts(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 51, 0, 0, time.UTC)
	var logs bytes.Buffer
	sink := &recordingSink{err: errors.New("boom")}
	d := &Dispatcher{Sink: sink, Toasts: NewToasts(0), Log: logging.New(&logs)}

	toasts := d.Dispatch(context.Background(), []Notice{{TaskID: "a", Message: "m"}}, now)
	require.Len(t, toasts, 1)
	assert.Len(t, sink.got, 1)
	assert.Contains(t, logs.String(), "notify_sink_failed")
}

func TestDesktopSinkPermission(t *testing.T) {
	var out bytes.Buffer
	s := NewDesktopSink(&out, Default)

	err := s.Notify(context.Background(), Notice{Message: "hello"})
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Empty(t, out.String())

	s.SetPermission(Granted)
	require.NoError(t, s.Notify(context.Background(), Notice{Message: "hello"}))
	assert.Contains(t, out.String(), "hello")

	// Denied permission still leaves the toast path working.
	s.SetPermission(Denied)
	d := &Dispatcher{Sink: s, Toasts: NewToasts(0)}
	assert.Len(t, d.Dispatch(context.Background(), []Notice{{Message: "x"}}, time.Now()), 1)
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("GRANTED")
	require.NoError(t, err)
	assert.Equal(t, Granted, p)
	_, err = ParsePermission("maybe")
	assert.Error(t, err)
}

func TestRunTicksUntilCancelled(t *testing.T) {
	fake := clock.NewFake(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	ticks := 0
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, fake, time.Millisecond, func(context.Context, time.Time) {
			mu.Lock()
			ticks++
			mu.Unlock()
		})
	}()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return ticks >= 3
	}, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
