package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/runner/shell"
)

func addShell(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:     "shell",
		Aliases: []string{"sh"},
		Short:   "Open the interactive planner.",
		Long: `Open a line-oriented shell over today's plan. Reminders are checked in
the background and shown as they come due. Type help inside the shell for
the list of commands.`,
		Example: `
dayplan shell
dayplan shell --date tomorrow --user "Hanako Sato"
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			l, err := loadPlanner(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			date, err := do.GetDate(l.Planner.Now())
			if err != nil {
				return err
			}
			if err := l.Planner.SelectDate(date); err != nil {
				return err
			}

			s := shell.Shell{
				Planner:    l.Planner,
				In:         cmd.InOrStdin(),
				Out:        cmd.OutOrStdout(),
				TickPeriod: l.Config.TickInterval,
				ShowID:     io.ShowID,
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddDateArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
