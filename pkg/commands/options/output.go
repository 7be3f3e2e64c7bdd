package options

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/printers"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	YAML bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().BoolVar(&po.YAML, "yaml", false,
		"Output as YAML.")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
}

// Format is the structured encoding picked by the flags, or printers.Text.
func (o *OutputOptions) Format() printers.Format {
	switch {
	case o.JSON:
		return printers.JSON
	case o.YAML:
		return printers.YAML
	}
	return printers.Text
}

func (o *OutputOptions) HandleError(err error) error {
	if err == nil || !o.Format().Structured() {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	if encErr := printers.Encode(color.Output, o.Format(), out); encErr != nil {
		return fmt.Errorf("%w (encoding error: %v)", err, encErr)
	}
	return nil
}
