package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dayplan/pkg/task"
)

const day = "2026-10-19"

func mk(id, start string, opts ...func(*task.Task)) task.Task {
	t := task.Draft{Title: id, Date: day, StartTime: start, Creator: "Taro"}.Build(id)
	for _, o := range opts {
		o(&t)
	}
	return t
}

func done(t *task.Task)    { t.Complete("Taro") }
func routine(t *task.Task) { t.Routine = true }
func on(date string) func(*task.Task) {
	return func(t *task.Task) { t.Date = date }
}
func lasting(m int) func(*task.Task) {
	return func(t *task.Task) { t.DurationMinutes = m }
}
func assigned(name string) func(*task.Task) {
	return func(t *task.Task) { t.Assignee = name }
}

func TestSlotsCoverTheDay(t *testing.T) {
	slots := Slots()
	require.Len(t, slots, 144)
	assert.Equal(t, "00:00", slots[0])
	assert.Equal(t, "23:50", slots[143])
	assert.Len(t, TimeOptions(), 288)
}

func TestSlotBucketsByFloor(t *testing.T) {
	tasks := []task.Task{
		mk("a", "10:15"),
		mk("b", "10:10"),
		mk("c", "10:19"),
		mk("d", "10:20"),
		mk("e", "10:15", on("2026-10-20")),
	}
	tl := Slot(tasks, day)

	require.Len(t, tl, SlotsPerDay)
	got := tl.Bucket("10:10")
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
	assert.Len(t, tl.Bucket("10:20"), 1)
	assert.Equal(t, 4, tl.Len())
	assert.Len(t, tl.Occupied(), 2)
}

func TestBucketOf(t *testing.T) {
	got, ok := BucketOf("10:15")
	require.True(t, ok)
	assert.Equal(t, "10:10", got)

	_, ok = BucketOf("nope")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	tasks := []task.Task{
		mk("r", "08:00", routine, assigned("Hanako")),
		mk("o", "09:00", assigned("Jiro")),
		mk("x", "09:00", on("2026-10-20")),
	}

	assert.Len(t, Filter{Date: day}.Apply(tasks), 2)
	assert.Len(t, Filter{Date: day, Person: "ALL"}.Apply(tasks), 2)

	got := Filter{Date: day, Person: "Hanako"}.Apply(tasks)
	require.Len(t, got, 1)
	assert.Equal(t, "r", got[0].ID)

	// Creator matches too.
	assert.Len(t, Filter{Date: day, Person: "Taro"}.Apply(tasks), 2)

	got = Filter{Date: day, Kind: OneOff}.Apply(tasks)
	require.Len(t, got, 1)
	assert.Equal(t, "o", got[0].ID)

	got = Filter{Date: day, Kind: Routine}.Apply(tasks)
	require.Len(t, got, 1)
	assert.Equal(t, "r", got[0].ID)
}

func TestActiveAndCompleted(t *testing.T) {
	tasks := []task.Task{mk("a", "10:15"), mk("b", "11:00", done)}
	assert.Equal(t, "a", Active(tasks)[0].ID)
	assert.Equal(t, "b", Completed(tasks)[0].ID)
}

func TestIsOverdueBoundaryIsStrict(t *testing.T) {
	tk := mk("a", "10:00")
	at := func(h, m int) time.Time { return time.Date(2026, 10, 19, h, m, 30, 0, time.UTC) }

	assert.False(t, IsOverdue(tk, at(9, 59)))
	assert.False(t, IsOverdue(tk, at(10, 0)))
	assert.True(t, IsOverdue(tk, at(10, 1)))

	tk.Complete("Taro")
	assert.False(t, IsOverdue(tk, at(23, 0)))
}

func TestIsOverdueOtherDays(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsOverdue(mk("past", "23:00", on("2026-10-18")), now))
	assert.False(t, IsOverdue(mk("future", "00:00", on("2026-10-20")), now))
	assert.Equal(t, 1, OverdueCount([]task.Task{mk("past", "23:00", on("2026-10-18"))}, "2026-10-18", now))
}

func TestComputeStats(t *testing.T) {
	tasks := []task.Task{
		mk("r1", "08:00", routine, lasting(30), done),
		mk("r2", "09:00", routine, lasting(15)),
		mk("o1", "10:00", lasting(90), done),
		mk("other", "10:00", on("2026-10-20"), done),
	}
	s := ComputeStats(tasks, day)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 67, s.CompletionRate)
	assert.Equal(t, 120, s.CompletedMinutes)
	assert.Equal(t, 15, s.RemainingMinutes)
	assert.Equal(t, 1, s.RoutineDone)
	assert.Equal(t, 2, s.RoutineTotal)
	assert.Equal(t, 1, s.OneOffDone)
	assert.Equal(t, 1, s.OneOffTotal)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 13, Percent(1, 8)) // 12.5 rounds up
	assert.Equal(t, 100, Percent(4, 4))
}

func TestPeople(t *testing.T) {
	tasks := []task.Task{
		mk("a", "08:00", assigned("Hanako")),
		mk("b", "09:00", assigned("Taro")),
		mk("c", "09:00", assigned("Jiro")),
	}
	assert.Equal(t, []string{"Hanako", "Taro", "Jiro"}, People(tasks))
}

func TestMonth(t *testing.T) {
	tasks := []task.Task{mk("a", "08:00", on("2026-10-05"))}
	g, err := Month("2026-10-19", "2026-10-19", "2026-10-20", tasks)
	require.NoError(t, err)

	assert.Equal(t, 2026, g.Year)
	assert.Equal(t, time.October, g.Month)
	assert.Equal(t, 4, g.Offset) // 2026-10-01 is a Thursday
	require.Len(t, g.Days, 31)
	assert.True(t, g.Days[4].HasTasks)
	assert.True(t, g.Days[18].Selected)
	assert.True(t, g.Days[19].Today)
	assert.Len(t, g.Weeks(), 5)
}

func TestMonthNavigation(t *testing.T) {
	prev, err := PrevMonth("2026-01-19")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", prev)

	next, err := NextMonth("2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", next)
}
