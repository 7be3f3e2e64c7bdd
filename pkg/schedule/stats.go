package schedule

import (
	"tableflip.dev/dayplan/pkg/task"
)

// Stats summarises one day. It always covers every task of the date; the
// person and kind filters never apply.
type Stats struct {
	Date             string `json:"date" yaml:"date"`
	Total            int    `json:"total" yaml:"total"`
	Completed        int    `json:"completed" yaml:"completed"`
	CompletionRate   int    `json:"completionRate" yaml:"completionRate"`
	CompletedMinutes int    `json:"completedMinutes" yaml:"completedMinutes"`
	RemainingMinutes int    `json:"remainingMinutes" yaml:"remainingMinutes"`
	RoutineDone      int    `json:"routineDone" yaml:"routineDone"`
	RoutineTotal     int    `json:"routineTotal" yaml:"routineTotal"`
	OneOffDone       int    `json:"oneOffDone" yaml:"oneOffDone"`
	OneOffTotal      int    `json:"oneOffTotal" yaml:"oneOffTotal"`
}

// ComputeStats summarises the tasks dated date.
func ComputeStats(tasks []task.Task, date string) Stats {
	s := Stats{Date: date}
	for _, t := range tasks {
		if t.Date != date {
			continue
		}
		s.Total++
		if t.Routine {
			s.RoutineTotal++
		} else {
			s.OneOffTotal++
		}
		if !t.IsDone() {
			s.RemainingMinutes += t.DurationMinutes
			continue
		}
		s.Completed++
		s.CompletedMinutes += t.DurationMinutes
		if t.Routine {
			s.RoutineDone++
		} else {
			s.OneOffDone++
		}
	}
	s.CompletionRate = Percent(s.Completed, s.Total)
	return s
}

// Percent is round-half-up of 100*part/whole, 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
