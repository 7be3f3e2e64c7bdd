package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/dayplan/pkg/commands/options"
	"tableflip.dev/dayplan/pkg/config"
)

var (
	output = &options.OutputOptions{}
	ro     = &rootOptions{}
)

type rootOptions struct {
	loader  *config.Loader
	user    string
	verbose bool
	noSeed  bool
}

func New() *cobra.Command {
	ro.loader = config.NewLoader()

	cmd := &cobra.Command{
		Use:   "dayplan",
		Short: base.Wrap80("Plan your day on a 10-minute timeline, get reminded before tasks start and roll routine work over to tomorrow."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&ro.user, "user", "u", "",
		"Act as this person. Overrides the user config key.")
	cmd.PersistentFlags().BoolVarP(&ro.verbose, "verbose", "v", false,
		"Write JSON logs to stderr.")
	cmd.PersistentFlags().BoolVar(&ro.noSeed, "no-seed", false,
		"Start with an empty day instead of the demo tasks.")
	_ = ro.loader.Viper().BindPFlag("user", cmd.PersistentFlags().Lookup("user"))

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShell(topLevel)
	addUI(topLevel)
	addSchedule(topLevel)
	addSlots(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}
