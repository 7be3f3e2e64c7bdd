package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/schedule"
	sched "tableflip.dev/dayplan/pkg/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	do := &options.DateOptions{}
	fo := &options.FilterOptions{}
	calendar := false

	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"day", "today"},
		Short:   "Print a day's timeline, completed tasks and stats.",
		Example: `
dayplan schedule
dayplan schedule --date tomorrow --kind routine
dayplan schedule --person "Hanako Sato" --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			l, err := loadPlanner(cmd)
			if err != nil {
				return output.HandleError(err)
			}
			defer l.Close()

			date, err := do.GetDate(l.Planner.Now())
			if err != nil {
				return output.HandleError(err)
			}
			kind, err := fo.GetKind()
			if err != nil {
				return output.HandleError(err)
			}

			s := schedule.Schedule{
				Planner:      l.Planner,
				Date:         date,
				Person:       fo.Person,
				Kind:         kind,
				ShowID:       io.ShowID,
				ShowEmpty:    io.ShowEmpty,
				ShowCalendar: calendar,
				Format:       output.Format(),
				Out:          cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddShowEmptyArgs(cmd, io)
	options.AddDateArgs(cmd, do)
	options.AddFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVarP(&calendar, "calendar", "m", false, "Include the month calendar.")

	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(sched.AllKinds), string(sched.Routine), string(sched.OneOff)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("person", func(c *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return personCompletions(c, toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addSlots(topLevel *cobra.Command) {
	opts := false

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the 10-minute timeline slots.",
		Example: `
dayplan slots
dayplan slots --start-options --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s := schedule.Slots{
				Options: opts,
				Format:  output.Format(),
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&opts, "start-options", false, "List the 5-minute start times offered when adding a task.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
