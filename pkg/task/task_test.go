package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftBuildDefaults(t *testing.T) {
	got := Draft{Title: "  Draft report ", Creator: "Taro", Date: "2026-10-19"}.Build("abc")

	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "Draft report", got.Title)
	assert.Equal(t, Todo, got.Status)
	assert.Equal(t, Medium, got.Priority)
	assert.Equal(t, DefaultStart, got.StartTime)
	assert.Equal(t, DefaultDuration, got.DurationMinutes)
	assert.Equal(t, "Taro", got.Assignee)
	assert.Empty(t, got.CompletedBy)
	assert.NoError(t, got.Validate())
}

func TestDraftBuildNormalizesStart(t *testing.T) {
	got := Draft{Title: "x", Date: "2026-10-19", StartTime: "9:05"}.Build("id")
	assert.Equal(t, "09:05", got.StartTime)
}

func TestValidate(t *testing.T) {
	base := Task{Title: "x", Date: "2026-10-19", StartTime: "10:15", DurationMinutes: 30, Status: Todo}
	require.NoError(t, base.Validate())

	bad := base
	bad.Title = " "
	assert.ErrorIs(t, bad.Validate(), ErrTitleRequired)

	bad = base
	bad.Date = "19/10/2026"
	assert.ErrorIs(t, bad.Validate(), ErrBadDate)

	bad = base
	bad.StartTime = "25:00"
	assert.ErrorIs(t, bad.Validate(), ErrBadStart)

	bad = base
	bad.DurationMinutes = 0
	assert.ErrorIs(t, bad.Validate(), ErrBadDuration)

	bad = base
	bad.Status = ""
	assert.ErrorIs(t, bad.Validate(), ErrBadStatus)
}

func TestCompleteAndReopenKeepCompletedByInvariant(t *testing.T) {
	tk := Task{Status: Todo}

	tk.Complete("Hanako")
	assert.True(t, tk.IsDone())
	assert.Equal(t, "Hanako", tk.CompletedBy)

	tk.Reopen()
	assert.Equal(t, Todo, tk.Status)
	assert.Empty(t, tk.CompletedBy)

	tk.Complete("")
	assert.Equal(t, UnknownActor, tk.CompletedBy)
}

func TestPatchApplyStatus(t *testing.T) {
	tk := Draft{Title: "x", Date: "2026-10-19"}.Build("id")

	done := Done
	require.NoError(t, Patch{Status: &done, Actor: "Taro"}.Apply(&tk))
	assert.Equal(t, "Taro", tk.CompletedBy)

	todo := Todo
	require.NoError(t, Patch{Status: &todo}.Apply(&tk))
	assert.Empty(t, tk.CompletedBy)
}

func TestPatchApplyRejectsInvalidAndLeavesTaskUnchanged(t *testing.T) {
	tk := Draft{Title: "keep", Date: "2026-10-19"}.Build("id")
	empty := ""
	err := Patch{Title: &empty}.Apply(&tk)
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.Equal(t, "keep", tk.Title)
}

func TestPatchApplyRejectsUnknownStatus(t *testing.T) {
	tk := Draft{Title: "keep", Date: "2026-10-19"}.Build("id")
	for _, st := range []Status{"", "archived"} {
		st := st
		err := Patch{Status: &st}.Apply(&tk)
		assert.ErrorIs(t, err, ErrBadStatus, string(st))
		assert.Equal(t, Todo, tk.Status)
	}
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	tk := Task{Comments: []Comment{{ID: "c1", Text: "hi"}}}
	cp := tk.Clone()
	cp.Comments[0].Text = "changed"
	assert.Equal(t, "hi", tk.Comments[0].Text)
}

func TestCloneID(t *testing.T) {
	assert.Equal(t, "1-2026-10-20", CloneID("1", "2026-10-20"))
	assert.Equal(t, "1-2026-10-21", CloneID("1-2026-10-20", "2026-10-21"))
}

func TestNewIDHasNoDash(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 16)
	assert.False(t, strings.Contains(id, "-"))
	assert.Equal(t, id, ClonePrefix(id))
}

func TestParsePriorityAndStatus(t *testing.T) {
	p, err := ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, High, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)

	s, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, Done, s)
}
