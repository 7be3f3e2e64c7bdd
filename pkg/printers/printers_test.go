package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tableflip.dev/dayplan/pkg/glyph"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/rollover"
	"tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/task"
)

func init() {
	color.NoColor = true
}

func sample() []task.Task {
	return []task.Task{
		{ID: "1", Title: "Stand-up", Date: "2026-10-19", StartTime: "09:05", DurationMinutes: 15, Routine: true, Status: task.Todo, Priority: task.High, Assignee: "Taro"},
		{ID: "2", Title: "Review", Date: "2026-10-19", StartTime: "10:00", DurationMinutes: 60, Status: task.Done, CompletedBy: "Hanako", Assignee: "Hanako"},
	}
}

func TestTimelineOccupiedRows(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Timeline(schedule.Slot(sample()[:1], "2026-10-19"), map[string]bool{"1": true})

	out := buf.String()
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "Stand-up")
	assert.Contains(t, out, "09:05-09:20")
	assert.Contains(t, out, "!")
	assert.NotContains(t, out, "09:10")
}

func TestTimelineEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Timeline(schedule.Slot(nil, "2026-10-19"), nil)
	assert.Contains(t, buf.String(), "none")
}

func TestCompletedShowsActor(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Completed(schedule.Completed(sample()))
	assert.Contains(t, buf.String(), "Review")
	assert.Contains(t, buf.String(), "by Hanako")
}

func TestTaskDetail(t *testing.T) {
	tk := sample()[0]
	tk.Notes = strings.Repeat("word ", 40)
	tk.Comments = []task.Comment{{Author: "Hanako", Text: "on it", CreatedAt: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}}
	tk.Attachments = []task.Attachment{{ID: "a1", Name: "plan.png", MediaType: "image/png", Size: 2048}}

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 30}
	pp.Task(tk, true)

	out := buf.String()
	assert.Contains(t, out, "(overdue)")
	assert.Contains(t, out, "Comments (1)")
	assert.Contains(t, out, "2026-10-19 08:00")
	assert.Contains(t, out, "plan.png")
	assert.Contains(t, out, "2.0 KiB")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "word") {
			assert.LessOrEqual(t, len(line), 30)
		}
	}
}

func TestRenderMonth(t *testing.T) {
	g, err := schedule.Month("2026-10-01", "2026-10-19", "2026-10-19", sample())
	require.NoError(t, err)

	out := RenderMonth(g)
	assert.Contains(t, out, "October 2026")
	assert.Contains(t, out, "Su Mo Tu We Th Fr Sa")
	assert.Contains(t, out, "31")
}

func TestRenderStats(t *testing.T) {
	s := schedule.ComputeStats(sample(), "2026-10-19")
	out := RenderStats(s, 1)
	assert.Contains(t, out, "50% done (1/2)")
	assert.Contains(t, out, "overdue 1")
}

func TestToastsAndRollover(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Toasts([]notify.Toast{{Message: "Task \"Stand-up\" starts in 5 minutes"}})
	assert.Contains(t, buf.String(), "starts in 5 minutes")

	buf.Reset()
	p, err := rollover.Preview(sample(), "2026-10-19")
	require.NoError(t, err)
	pp.Rollover(p)
	assert.Contains(t, buf.String(), "Roll 2026-10-19 over to 2026-10-20")
	assert.Contains(t, buf.String(), "1 routine task(s) copied")
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, YAML, sample()[0]))
	var back task.Task
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "Stand-up", back.Title)

	buf.Reset()
	require.NoError(t, Encode(&buf, JSON, map[string]int{"n": 1}))
	assert.JSONEq(t, `{"n":1}`, buf.String())

	assert.Error(t, Encode(&buf, Format("xml"), nil))
	assert.True(t, JSON.Structured())
	assert.False(t, Text.Structured())
}

func TestLegendSkipsEmptyGroups(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Legend(glyph.In(glyph.Kind))

	out := buf.String()
	assert.Contains(t, out, "Kind")
	assert.Contains(t, out, glyph.Routine)
	assert.NotContains(t, out, "Priority")
}
