package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/schedule"
)

// FilterOptions narrows the timeline.
type FilterOptions struct {
	Person string
	Kind   string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Person, "person", "p", schedule.AllPeople,
		"Only show tasks assigned to or created by this person.")
	cmd.Flags().StringVarP(&o.Kind, "kind", "t", string(schedule.AllKinds),
		"Task type to show. One of 'all', 'routine' or 'one-off'.")
}

// GetKind parses the kind flag.
func (o *FilterOptions) GetKind() (schedule.Kind, error) {
	return schedule.ParseKind(o.Kind)
}
