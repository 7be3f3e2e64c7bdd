package commands

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Open the full-screen planner.",
		Long: `Open the day timeline beside the month calendar and the day's progress.
Reminders pop up as they come due. Press ? inside for the keys.`,
		Example: `
dayplan ui
dayplan ui --date tomorrow --user "Hanako Sato"
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

			return tui.Run(cmd.Context(), l.Planner,
				tui.Options{TickPeriod: l.Config.TickInterval, ShowID: io.ShowID},
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddDateArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
