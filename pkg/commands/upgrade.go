package commands

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

func addUpgrade(topLevel *cobra.Command) {
	target := "latest"
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade dayplan cli.",
		Example: `
dayplan upgrade
dayplan upgrade --to v0.2.0
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			pkg := "tableflip.dev/dayplan/cmd/dayplan@" + strings.TrimSpace(target)
			ex := exec.CommandContext(cmd.Context(), "go", "install", pkg)
			var stderr bytes.Buffer
			ex.Stderr = &stderr
			if err := ex.Run(); err != nil {
				return fmt.Errorf("%s: %w: %s", ex.String(), err, strings.TrimSpace(stderr.String()))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "installed %s (was %s)\n", pkg, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", target, "Version to install.")
	topLevel.AddCommand(cmd)
}
