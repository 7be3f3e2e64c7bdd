package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var got map[string]any
		if err := json.Unmarshal(line, &got); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, got)
	}
	return out
}

func TestErrorWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	Error(logger, "attachment_read_failed", errors.New("boom"), map[string]any{"task_id": "t1"})

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	got := lines[0]
	want := map[string]any{"level": "error", "msg": "attachment_read_failed", "error": "boom", "task_id": "t1"}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %v, want %v (line %v)", k, got[k], v, got)
		}
	}
	if got["ts"] == nil || got["ts"] == "" {
		t.Fatalf("missing ts: %v", got)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	Info(nil, "ignored", nil)
}

func TestInfoAndWarnLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	Info(logger, "planner_ready", map[string]any{"user": "Taro", "watching": false})
	Warn(logger, "attachment_orphaned", nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["level"] != "info" || lines[0]["user"] != "Taro" || lines[0]["watching"] != false {
		t.Fatalf("first line = %v", lines[0])
	}
	if lines[1]["level"] != "warn" {
		t.Fatalf("second line = %v", lines[1])
	}
}

func TestDiscardDropsEverything(t *testing.T) {
	Error(Discard(), "ignored", errors.New("boom"), nil)
}
