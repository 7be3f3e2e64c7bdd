package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/glyph"
	"tableflip.dev/dayplan/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	var group string
	cmd := &cobra.Command{
		Use:     "key",
		Aliases: []string{"legend"},
		Short:   "Show what the marks in a day view mean.",
		Example: `
dayplan key
dayplan key --group priority
`,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			k := key.Key{Format: output.Format(), Out: cmd.OutOrStdout()}
			if group != "" {
				g, err := parseGroup(group)
				if err != nil {
					return output.HandleError(err)
				}
				k.Group = g
			}
			return output.HandleError(k.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Only one group: priority, kind or state.")
	_ = cmd.RegisterFlagCompletionFunc("group", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"priority", "kind", "state"}, cobra.ShellCompDirectiveNoFileComp
	})
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func parseGroup(raw string) (glyph.Group, error) {
	for _, g := range glyph.Groups() {
		if strings.EqualFold(string(g), strings.TrimSpace(raw)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown glyph group %q", raw)
}
