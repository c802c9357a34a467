package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slot>",
		Short: "Display one model slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := o.parseIndex(args[0])
			if err != nil {
				return err
			}

			slot, err := o.repository().LoadSlot(index)
			if err != nil {
				return err
			}
			slot.Base().ID = index

			if o.jsonMode {
				return writeJSON(cmd.OutOrStdout(), slot)
			}
			writeSlotDetail(cmd.OutOrStdout(), slot)
			return nil
		},
	}
}
