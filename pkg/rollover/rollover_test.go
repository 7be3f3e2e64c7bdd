package rollover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
)

const (
	today    = "2026-10-19"
	tomorrow = "2026-10-20"
)

func build(id string, routine, done bool) task.Task {
	t := task.Draft{Title: id, Date: today, Creator: "Taro", Notes: "n"}.Build(id)
	t.Routine = routine
	t.Comments = []task.Comment{{ID: "c", Author: "Taro", Text: "hi"}}
	if done {
		t.Complete("Taro")
	}
	return t
}

func byID(tasks []task.Task) map[string]task.Task {
	m := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

func TestPreview(t *testing.T) {
	tasks := []task.Task{
		build("r", true, false),
		build("rd", true, true),
		build("o", false, true),
		build("open", false, false),
	}
	p, err := Preview(tasks, today)
	require.NoError(t, err)

	assert.Equal(t, tomorrow, p.To)
	assert.Len(t, p.Clone, 2)
	require.Len(t, p.Dropped, 1)
	assert.Equal(t, "o", p.Dropped[0].ID)
	assert.Len(t, p.Purge, 2)
	assert.Equal(t, Summary{From: today, To: tomorrow, Cloned: 2, Dropped: 1, Purged: 2}, p.Summary())

	_, err = Preview(tasks, "bad")
	assert.Error(t, err)
}

func TestApplyRoutineAndOneOff(t *testing.T) {
	tasks := []task.Task{build("R", true, false), build("O", false, true)}
	p, err := Preview(tasks, today)
	require.NoError(t, err)

	got := byID(Apply(tasks, p))
	require.Len(t, got, 2)

	orig, ok := got["R"]
	require.True(t, ok)
	assert.Equal(t, today, orig.Date)

	clone, ok := got["R-"+tomorrow]
	require.True(t, ok)
	assert.Equal(t, tomorrow, clone.Date)
	assert.Equal(t, task.Todo, clone.Status)
	assert.Empty(t, clone.CompletedBy)
	assert.Equal(t, "n", clone.Notes)
	assert.Len(t, clone.Comments, 1)

	_, ok = got["O"]
	assert.False(t, ok)
}

func TestApplyDoneRoutineIsClonedAndPurged(t *testing.T) {
	tasks := []task.Task{build("R", true, true)}
	p, _ := Preview(tasks, today)

	got := Apply(tasks, p)
	require.Len(t, got, 1)
	assert.Equal(t, "R-"+tomorrow, got[0].ID)
	assert.Equal(t, task.Todo, got[0].Status)
}

func TestApplyLeavesOtherDatesAlone(t *testing.T) {
	other := build("X", false, true)
	other.Date = "2026-10-18"
	tasks := []task.Task{other, build("open", false, false)}
	p, _ := Preview(tasks, today)

	got := Apply(tasks, p)
	assert.Equal(t, tasks, got)
}

func TestApplyIsIdempotentPerTargetDate(t *testing.T) {
	tasks := []task.Task{build("R", true, false)}
	p, _ := Preview(tasks, today)

	once := Apply(tasks, p)
	twice := Apply(once, p)
	assert.Equal(t, once, twice)
}

func TestCloneIDUsesStablePrefix(t *testing.T) {
	r := build("R", true, false)
	first := CloneFor(r, tomorrow)
	second := CloneFor(first, "2026-10-21")
	assert.Equal(t, "R-2026-10-21", second.ID)
}

func TestSessionCommit(t *testing.T) {
	st := store.New()
	require.NoError(t, st.Seed(build("R", true, false), build("O", false, true)))

	var s Session
	p, err := s.Begin(st, today)
	require.NoError(t, err)
	assert.Equal(t, Previewing, s.State())
	assert.Len(t, p.Clone, 1)

	_, err = s.Begin(st, today)
	assert.ErrorIs(t, err, ErrBusy)

	res, err := s.Commit(st)
	require.NoError(t, err)
	assert.Equal(t, Done, s.State())
	require.Len(t, res.Removed, 1)
	assert.Equal(t, "O", res.Removed[0].ID)

	got := byID(st.Snapshot().Tasks)
	assert.Contains(t, got, "R")
	assert.Contains(t, got, "R-"+tomorrow)
	assert.NotContains(t, got, "O")

	require.NoError(t, s.Finish())
	assert.Equal(t, Idle, s.State())
}

func TestSessionCancelLeavesStoreUntouched(t *testing.T) {
	st := store.New()
	require.NoError(t, st.Seed(build("R", true, false), build("O", false, true)))
	before := st.Snapshot()

	var s Session
	_, err := s.Begin(st, today)
	require.NoError(t, err)
	require.NoError(t, s.Cancel())

	assert.Equal(t, Idle, s.State())
	assert.Equal(t, before, st.Snapshot())

	_, err = s.Commit(st)
	assert.ErrorIs(t, err, ErrNoPreview)
	assert.ErrorIs(t, s.Finish(), ErrNotDone)
}
