package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eliasbuenosdias/voice-changer/internal/slots"
	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

func newSetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <slot> <json>",
		Short: "Replace a slot's descriptor",
		Long: "Decode <json> as a slot descriptor and write it to the slot, replacing\n" +
			"the previous descriptor in full. Keys the decoder does not recognize are\n" +
			"dropped and fields that are not given take their defaults.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := o.parseIndex(args[0])
			if err != nil {
				return err
			}

			slot, err := slots.DecodeSlot([]byte(args[1]))
			if err != nil {
				if errors.Is(err, types.ErrNotObject) {
					return userError("descriptor must be a JSON object")
				}
				return userError("invalid descriptor: %v", err)
			}
			return o.saveAndReport(cmd, index, slot)
		},
	}
}

func newClearCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <slot>",
		Short: "Reset a slot to the empty record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := o.parseIndex(args[0])
			if err != nil {
				return err
			}
			return o.saveAndReport(cmd, index, types.NewModelSlot())
		},
	}
}

// saveAndReport writes slot to index and prints the stored record.
func (o *options) saveAndReport(cmd *cobra.Command, index int, slot types.Slot) error {
	slot.Base().ID = index
	if err := o.repository().SaveSlot(index, slot); err != nil {
		return err
	}
	o.logger.Info("slot saved",
		zap.Int("slot", index),
		zap.String("voice_changer_type", string(slot.Type())))

	if o.jsonMode {
		return writeJSON(cmd.OutOrStdout(), slot)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved slot %d (%s)\n", index, typeLabel(slot))
	return nil
}
