package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/timeutil"
)

const layoutShort = "1/2"

// DateOptions selects the day a command works on.
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.DateString, "date", "",
		`Specify a day, example: --date="2026-10-19", --date="10/19" or --date=tomorrow.`)
}

// GetDate resolves the flag against now. Empty means today.
func (o *DateOptions) GetDate(now time.Time) (string, error) {
	return ParseDate(o.DateString, now)
}

// ParseDate accepts YYYY-MM-DD, M/D, today, tomorrow and yesterday.
func ParseDate(raw string, now time.Time) (string, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	today := timeutil.DateOf(now)
	switch raw {
	case "", "today":
		return today, nil
	case "tomorrow":
		return timeutil.AddDays(today, 1)
	case "yesterday":
		return timeutil.AddDays(today, -1)
	}
	if timeutil.ValidDate(raw) {
		return raw, nil
	}
	t, err := time.Parse(layoutShort, raw)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", raw)
	}
	// Keep the year of now.
	t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return t.Format(timeutil.DateLayout), nil
}
