package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the slotctl release version.
const Version = "0.1.0"

const modulePath = "github.com/eliasbuenosdias/voice-changer"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the slotctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "slotctl v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
