package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/clock"
	"tableflip.dev/dayplan/pkg/seed"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/task"
)

func init() {
	color.NoColor = true
}

type answers []bool

func (a *answers) confirm(string) (bool, error) {
	if len(*a) == 0 {
		return false, nil
	}
	next := (*a)[0]
	*a = (*a)[1:]
	return next, nil
}

func newShell(t *testing.T, script string, yes ...bool) (*Shell, *bytes.Buffer) {
	t.Helper()
	spool, err := store.OpenSpool("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = spool.Close() })

	fake := clock.NewFake(time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC))
	p := app.New(app.Options{Clock: fake, Spool: spool, User: seed.Owner})
	require.NoError(t, p.Store.Seed(seed.Tasks("2026-10-19")...))

	a := answers(yes)
	var out bytes.Buffer
	return &Shell{
		Planner: p,
		In:      strings.NewReader(script),
		Out:     &out,
		Confirm: a.confirm,
	}, &out
}

func TestShellAddToggleAndShow(t *testing.T) {
	sh, out := newShell(t, strings.Join([]string{
		"add --start 10:10 --duration 30 --priority high Write tests",
		"done 1",
		"show 1",
		"",
	}, "\n"))
	require.NoError(t, sh.Do(context.Background()))

	assert.Contains(t, out.String(), "added")
	assert.Contains(t, out.String(), "Write tests at 10:10")
	assert.Contains(t, out.String(), "done by "+seed.Owner)

	var added task.Task
	for _, tk := range sh.Planner.Store.Snapshot().Tasks {
		if tk.Title == "Write tests" {
			added = tk
		}
	}
	assert.Equal(t, task.High, added.Priority)
	assert.Equal(t, 30, added.DurationMinutes)
	assert.Equal(t, "2026-10-19", added.Date)
}

func TestShellQuotedArguments(t *testing.T) {
	sh, out := newShell(t, strings.Join([]string{
		`add --assignee "Hanako Sato" --start 11:00 Review deck`,
		`edit 4 --assignee 'Taro Yamada' --title "Weekly report, final"`,
		`add "unterminated`,
		"",
	}, "\n"))
	require.NoError(t, sh.Do(context.Background()))

	var added task.Task
	for _, tk := range sh.Planner.Store.Snapshot().Tasks {
		if tk.Title == "Review deck" {
			added = tk
		}
	}
	assert.Equal(t, seed.Peer, added.Assignee)
	assert.Equal(t, "11:00", added.StartTime)

	got, err := sh.Planner.Get("4")
	require.NoError(t, err)
	assert.Equal(t, seed.Owner, got.Assignee)
	assert.Equal(t, "Weekly report, final", got.Title)
	assert.Contains(t, out.String(), "error: ")
	assert.Equal(t, 5, sh.Planner.Store.Len())
}

func TestShellRejectsEmptyTitle(t *testing.T) {
	sh, out := newShell(t, "add --start 10:00\n")
	require.NoError(t, sh.Do(context.Background()))
	assert.Contains(t, out.String(), "a title is required")
	assert.Equal(t, 4, sh.Planner.Store.Len())
}

func TestShellDeleteConfirmAndCancel(t *testing.T) {
	sh, out := newShell(t, "rm 3\nrm 3\nrm missing\n", false, true)
	require.NoError(t, sh.Do(context.Background()))

	assert.Contains(t, out.String(), "kept Prepare client A meeting deck")
	assert.Contains(t, out.String(), "deleted Prepare client A meeting deck")
	assert.Contains(t, out.String(), "no such task")
	_, err := sh.Planner.Get("3")
	assert.ErrorIs(t, err, app.ErrNotFound)
	_, pending := sh.Planner.PendingDelete()
	assert.False(t, pending)
}

func TestShellRolloverCancelLeavesStore(t *testing.T) {
	sh, out := newShell(t, "done 3\nrollover\n", false)
	before := sh.Planner.Store.Len()
	require.NoError(t, sh.Do(context.Background()))

	assert.Contains(t, out.String(), "rollover cancelled")
	assert.Equal(t, before, sh.Planner.Store.Len())
	assert.Equal(t, "2026-10-19", sh.Planner.SelectedDate())
}

func TestShellRolloverCommit(t *testing.T) {
	sh, out := newShell(t, "done 3\nrollover\n", true)
	require.NoError(t, sh.Do(context.Background()))

	assert.Contains(t, out.String(), "rolled over to 2026-10-20: 2 copied, 1 cleared")
	assert.Equal(t, "2026-10-20", sh.Planner.SelectedDate())
	_, err := sh.Planner.Get("1-2026-10-20")
	assert.NoError(t, err)
	_, err = sh.Planner.Get("3")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestShellNavigationAndFilter(t *testing.T) {
	sh, out := newShell(t, strings.Join([]string{
		"day next",
		"day prev",
		"filter --kind routine",
		"filter clear",
		"filter Hanako Sato",
		"cal next",
		"",
	}, "\n"))
	require.NoError(t, sh.Do(context.Background()))

	f := sh.Planner.Filter()
	assert.Equal(t, seed.Peer, f.Person)
	assert.Equal(t, "2026-11-01", sh.Planner.SelectedDate())
	assert.Contains(t, out.String(), "2026-10-20>")
	assert.Contains(t, out.String(), "November 2026")
}

func TestShellEditMoveAndComment(t *testing.T) {
	sh, _ := newShell(t, strings.Join([]string{
		"edit 4 --title Weekly report --duration 45m",
		"edit 4 --routine=true",
		"move 4 14:05",
		"comment 4 draft is in the shared folder",
		"note 4 bring numbers",
		"",
	}, "\n"))
	require.NoError(t, sh.Do(context.Background()))

	got, err := sh.Planner.Get("4")
	require.NoError(t, err)
	assert.Equal(t, "Weekly", got.Title)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.True(t, got.Routine)
	assert.Equal(t, "14:05", got.StartTime)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, seed.Owner, got.Comments[0].Author)
	assert.Equal(t, "bring numbers", got.Notes)
}

func TestShellAttachSaveDetach(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "agenda.txt")
	require.NoError(t, os.WriteFile(src, []byte("1. numbers"), 0o644))

	sh, out := newShell(t, "attach 2 "+src+"\n")
	require.NoError(t, sh.Do(context.Background()))
	assert.Contains(t, out.String(), "attached agenda.txt to 2")

	got, err := sh.Planner.Get("2")
	require.NoError(t, err)
	require.Len(t, got.Attachments, 1)
	attID := got.Attachments[0].ID

	dst := filepath.Join(dir, "copy.txt")
	sh.In = strings.NewReader("save 2 " + attID + " " + dst + "\ndetach 2 " + attID + "\n")
	require.NoError(t, sh.Do(context.Background()))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "1. numbers", string(data))
	got, err = sh.Planner.Get("2")
	require.NoError(t, err)
	assert.Empty(t, got.Attachments)
}

func TestShellToasts(t *testing.T) {
	sh, out := newShell(t, "edit 2 --notify 10\nuser Hanako Sato\n")
	require.NoError(t, sh.Do(context.Background()))
	assert.Contains(t, out.String(), "acting as Hanako Sato")

	fake := sh.Planner.Clock.(*clock.Fake)
	fake.Set(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	fired := sh.Planner.Tick(context.Background(), fake.Now())
	require.Len(t, fired, 1)

	out.Reset()
	sh.In = strings.NewReader("toasts\n")
	require.NoError(t, sh.Do(context.Background()))
	assert.Contains(t, out.String(), `Task "Daily scrum" starts in 10 minutes`)
}

func TestShellUnknownCommandAndQuit(t *testing.T) {
	sh, out := newShell(t, "frobnicate\nquit\nadd never runs\n")
	require.NoError(t, sh.Do(context.Background()))
	assert.Contains(t, out.String(), `unknown command "frobnicate"`)
	assert.Equal(t, 4, sh.Planner.Store.Len())
}

func TestShellHelp(t *testing.T) {
	sh, out := newShell(t, "help\n")
	require.NoError(t, sh.Do(context.Background()))
	for _, name := range []string{"add", "rollover", "dismiss", "quit"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestShellKey(t *testing.T) {
	sh, out := newShell(t, "key\n")
	require.NoError(t, sh.Do(context.Background()))
	assert.Contains(t, out.String(), "overdue")
	assert.Contains(t, out.String(), "Priority")
}

func TestParseBool(t *testing.T) {
	for _, in := range []string{"y", "Yes", "true", "1"} {
		v, err := ParseBool(in)
		require.NoError(t, err)
		assert.True(t, v, in)
	}
	v, err := ParseBool("no")
	require.NoError(t, err)
	assert.False(t, v)
	_, err = ParseBool("maybe")
	assert.Error(t, err)
}
