package commands

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(dayplan completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(dayplan completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func personCompletions(cmd *cobra.Command, toComplete string) []string {
	l, err := loadPlanner(cmd)
	if err != nil {
		return nil
	}
	defer l.Close()

	var out []string
	for _, p := range l.Planner.People() {
		if strings.HasPrefix(strings.ToLower(p), strings.ToLower(toComplete)) {
			out = append(out, strconv.Quote(p))
		}
	}
	return out
}
