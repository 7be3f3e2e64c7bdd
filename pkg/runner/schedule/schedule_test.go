package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/clock"
	"tableflip.dev/dayplan/pkg/printers"
	sched "tableflip.dev/dayplan/pkg/schedule"
	"tableflip.dev/dayplan/pkg/seed"
)

func newPlanner(t *testing.T) *app.Planner {
	t.Helper()
	fake := clock.NewFake(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))
	p := app.New(app.Options{Clock: fake, User: seed.Owner})
	require.NoError(t, p.Store.Seed(seed.Tasks("2026-10-19")...))
	return p
}

func TestScheduleText(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	n := &Schedule{Planner: newPlanner(t), ShowCalendar: true, Out: &buf}
	require.NoError(t, n.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "2026-10-19")
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "% done")
	assert.Contains(t, out, "Su Mo Tu We Th Fr Sa")
}

func TestScheduleFilteredTitle(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	n := &Schedule{Planner: newPlanner(t), Person: seed.Peer, Kind: sched.AllKinds, Out: &buf}
	require.NoError(t, n.Do(context.Background()))
	assert.Contains(t, buf.String(), "("+seed.Peer+", all)")
}

func TestScheduleJSON(t *testing.T) {
	var buf bytes.Buffer
	n := &Schedule{Planner: newPlanner(t), Format: printers.JSON, ShowCalendar: true, Out: &buf}
	require.NoError(t, n.Do(context.Background()))

	var got struct {
		Date     string           `json:"date"`
		Timeline []sched.Row      `json:"timeline"`
		Stats    sched.Stats      `json:"stats"`
		Calendar *sched.MonthGrid `json:"calendar"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2026-10-19", got.Date)
	assert.Equal(t, 4, got.Stats.Total)
	assert.NotNil(t, got.Calendar)
	for _, r := range got.Timeline {
		assert.NotEmpty(t, r.Tasks)
	}
}

func TestScheduleBadDate(t *testing.T) {
	n := &Schedule{Planner: newPlanner(t), Date: "tomorrow"}
	assert.Error(t, n.Do(context.Background()))
}

func TestSlots(t *testing.T) {
	var buf bytes.Buffer
	n := &Slots{Format: printers.YAML, Out: &buf}
	require.NoError(t, n.Do(context.Background()))

	var labels []string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &labels))
	assert.Len(t, labels, sched.SlotsPerDay)

	buf.Reset()
	n = &Slots{Options: true, Out: &buf}
	require.NoError(t, n.Do(context.Background()))
	assert.Equal(t, 288, strings.Count(buf.String(), "\n")-1)
}
