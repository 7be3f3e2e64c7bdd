// Package seed provides the demo day the planner starts with.
package seed

import (
	"tableflip.dev/dayplan/pkg/task"
)

const (
	Owner = "Taro Yamada"
	Team  = "Whole team"
	Peer  = "Hanako Sato"
	Other = "Ichiro Suzuki"
)

// Tasks returns the demo tasks dated date.
func Tasks(date string) []task.Task {
	return []task.Task{
		{
			ID:              "1",
			Title:           "Check & reply to email",
			Assignee:        Owner,
			Creator:         Owner,
			Priority:        task.Medium,
			Status:          task.Todo,
			Date:            date,
			StartTime:       "08:00",
			DurationMinutes: 30,
			Routine:         true,
		},
		{
			ID:              "2",
			Title:           "Daily scrum",
			Assignee:        Team,
			Creator:         Owner,
			Priority:        task.High,
			Status:          task.Todo,
			Date:            date,
			StartTime:       "09:05",
			DurationMinutes: 15,
			Routine:         true,
		},
		{
			ID:              "3",
			Title:           "Prepare client A meeting deck",
			Assignee:        Peer,
			Creator:         Owner,
			Priority:        task.High,
			Status:          task.Todo,
			Date:            date,
			StartTime:       "10:15",
			DurationMinutes: 90,
		},
		{
			ID:              "4",
			Title:           "Write weekly progress report",
			Assignee:        Other,
			Creator:         Owner,
			Priority:        task.Medium,
			Status:          task.Todo,
			Date:            date,
			StartTime:       "13:30",
			DurationMinutes: 60,
		},
	}
}
