package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/task"
)

// ErrNotPermitted is returned by a sink that may not deliver.
var ErrNotPermitted = errors.New("notify: desktop notifications not permitted")

// Notice is one reminder for one task.
type Notice struct {
	TaskID  string    `json:"taskId" yaml:"taskId"`
	Title   string    `json:"title" yaml:"title"`
	Message string    `json:"message" yaml:"message"`
	At      time.Time `json:"at" yaml:"at"`
}

// NoticeFor builds the reminder for t.
func NoticeFor(t task.Task, at time.Time) Notice {
	return Notice{TaskID: t.ID, Title: t.Title, Message: Message(t), At: at}
}

// Sink displays a notice outside the app.
type Sink interface {
	Notify(ctx context.Context, n Notice) error
}

// Permission is the user's answer to the desktop notification prompt.
type Permission string

const (
	Default Permission = "default"
	Granted Permission = "granted"
	Denied  Permission = "denied"
)

// ParsePermission converts config input into a Permission.
func ParsePermission(raw string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "default", "ask":
		return Default, nil
	case "granted", "on", "true", "yes":
		return Granted, nil
	case "denied", "off", "false", "no":
		return Denied, nil
	}
	return Default, fmt.Errorf("notify: unknown permission %q", raw)
}

// DesktopSink rings the terminal bell and prints the notice, only once the
// permission is granted.
type DesktopSink struct {
	mu   sync.RWMutex
	perm Permission
	out  io.Writer
}

// NewDesktopSink writes granted notices to out.
func NewDesktopSink(out io.Writer, perm Permission) *DesktopSink {
	return &DesktopSink{out: out, perm: perm}
}

// Permission returns the current permission.
func (s *DesktopSink) Permission() Permission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perm
}

// SetPermission records the user's answer.
func (s *DesktopSink) SetPermission(p Permission) {
	s.mu.Lock()
	s.perm = p
	s.mu.Unlock()
}

func (s *DesktopSink) Notify(ctx context.Context, n Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Permission() != Granted {
		return ErrNotPermitted
	}
	_, err := color.New(color.FgYellow, color.Bold).Fprintf(s.out, "\a🔔 %s\n", n.Message)
	return err
}

// Dispatcher fans a notice out to the toast queue and the sink. The toast is
// always recorded; a missing permission never blocks it.
type Dispatcher struct {
	Sink   Sink
	Toasts *Toasts
	Log    *slog.Logger
}

// Dispatch delivers every notice and returns the toasts it queued.
func (d *Dispatcher) Dispatch(ctx context.Context, notices []Notice, now time.Time) []Toast {
	out := make([]Toast, 0, len(notices))
	for _, n := range notices {
		if d.Toasts != nil {
			out = append(out, d.Toasts.Push(n, now))
		}
		if d.Sink == nil {
			continue
		}
		if err := d.Sink.Notify(ctx, n); err != nil && !errors.Is(err, ErrNotPermitted) {
			logging.Error(d.Log, "notify_sink_failed", err, map[string]any{"task_id": n.TaskID})
		}
	}
	return out
}
