// Package logging writes one JSON object per line through log/slog.
package logging

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// New returns a JSON logger. Lines carry "ts", "level" and "msg" plus the
// fields passed to Info, Warn or Error.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
				a.Value = slog.StringValue(a.Value.Time().UTC().Format("2006-01-02T15:04:05.999999999Z07:00"))
			case slog.LevelKey:
				a.Value = slog.StringValue(strings.ToLower(a.Value.String()))
			}
			return a
		},
	}))
}

// Discard is a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Info logs msg with fields at info level.
func Info(logger *slog.Logger, msg string, fields map[string]any) {
	write(logger, slog.LevelInfo, msg, fields)
}

// Warn logs msg with fields at warn level.
func Warn(logger *slog.Logger, msg string, fields map[string]any) {
	write(logger, slog.LevelWarn, msg, fields)
}

// Error logs msg and err with fields at error level.
func Error(logger *slog.Logger, msg string, err error, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	write(logger, slog.LevelError, msg, fields)
}

func write(logger *slog.Logger, level slog.Level, msg string, fields map[string]any) {
	if logger == nil {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}
