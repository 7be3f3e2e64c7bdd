package schedule

import (
	"time"

	"tableflip.dev/dayplan/pkg/task"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// Day is one cell of the month grid.
type Day struct {
	Date     string `json:"date" yaml:"date"`
	Day      int    `json:"day" yaml:"day"`
	Today    bool   `json:"today,omitempty" yaml:"today,omitempty"`
	Selected bool   `json:"selected,omitempty" yaml:"selected,omitempty"`
	HasTasks bool   `json:"hasTasks,omitempty" yaml:"hasTasks,omitempty"`
}

// MonthGrid is a Sunday-first month view. Offset is the number of blank
// cells before day 1.
type MonthGrid struct {
	Year   int        `json:"year" yaml:"year"`
	Month  time.Month `json:"month" yaml:"month"`
	Offset int        `json:"offset" yaml:"offset"`
	Days   []Day      `json:"days" yaml:"days"`
}

// Weeks splits the grid into rows of seven, padding with zero Days.
func (g MonthGrid) Weeks() [][]Day {
	cells := make([]Day, g.Offset, g.Offset+len(g.Days))
	cells = append(cells, g.Days...)
	for len(cells)%7 != 0 {
		cells = append(cells, Day{})
	}
	weeks := make([][]Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// Month builds the grid for the month containing anchor. selected and today
// are "YYYY-MM-DD" dates to flag.
func Month(anchor, selected, today string, tasks []task.Task) (MonthGrid, error) {
	a, err := time.Parse(timeutil.DateLayout, anchor)
	if err != nil {
		return MonthGrid{}, err
	}
	first := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	dated := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		dated[t.Date] = struct{}{}
	}

	g := MonthGrid{
		Year:   first.Year(),
		Month:  first.Month(),
		Offset: int(first.Weekday()),
		Days:   make([]Day, 0, days),
	}
	for d := 1; d <= days; d++ {
		date := first.AddDate(0, 0, d-1).Format(timeutil.DateLayout)
		_, has := dated[date]
		g.Days = append(g.Days, Day{
			Date:     date,
			Day:      d,
			Today:    date == today,
			Selected: date == selected,
			HasTasks: has,
		})
	}
	return g, nil
}

// PrevMonth returns day 1 of the month before date.
func PrevMonth(date string) (string, error) {
	return shiftMonth(date, -1)
}

// NextMonth returns day 1 of the month after date.
func NextMonth(date string) (string, error) {
	return shiftMonth(date, 1)
}

func shiftMonth(date string, n int) (string, error) {
	t, err := time.Parse(timeutil.DateLayout, date)
	if err != nil {
		return "", err
	}
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return first.Format(timeutil.DateLayout), nil
}
