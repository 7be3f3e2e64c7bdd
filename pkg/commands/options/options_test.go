package options

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/schedule"
)

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "2026-10-19"},
		{in: "Today", want: "2026-10-19"},
		{in: "tomorrow", want: "2026-10-20"},
		{in: "yesterday", want: "2026-10-18"},
		{in: "2026-12-31", want: "2026-12-31"},
		{in: "1/3", want: "2026-01-03"},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in, now)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseDate("next week", now)
	assert.Error(t, err)
}

func TestFilterKind(t *testing.T) {
	o := &FilterOptions{Kind: "routine"}
	k, err := o.GetKind()
	require.NoError(t, err)
	assert.Equal(t, schedule.Routine, k)

	o.Kind = "weekly"
	_, err = o.GetKind()
	assert.Error(t, err)
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, printers.Text, (&OutputOptions{}).Format())
	assert.Equal(t, printers.JSON, (&OutputOptions{JSON: true}).Format())
	assert.Equal(t, printers.YAML, (&OutputOptions{YAML: true}).Format())

	boom := errors.New("boom")
	assert.Equal(t, boom, (&OutputOptions{}).HandleError(boom))
	assert.NoError(t, (&OutputOptions{}).HandleError(nil))
}
