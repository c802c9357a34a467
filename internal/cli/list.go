package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eliasbuenosdias/voice-changer/internal/sqlite"
	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

func newListCmd(o *options) *cobra.Command {
	var (
		typeFlag string
		nameFlag string
		allFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List model slots",
		Long: "List the slots of the model directory. Empty slots are hidden unless\n" +
			"--all is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.Filter{
				Type:         types.VoiceChangerType(typeFlag),
				NameContains: nameFlag,
				OccupiedOnly: !allFlag,
			}
			if filter.Type != "" && !filter.Type.IsKnown() {
				return userError("unknown voice changer type %q", typeFlag)
			}
			return o.runList(cmd, filter)
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "only slots of this voice changer type")
	cmd.Flags().StringVar(&nameFlag, "name", "", "only slots whose name contains this text")
	cmd.Flags().BoolVar(&allFlag, "all", false, "include empty slots")
	return cmd
}

func (o *options) runList(cmd *cobra.Command, filter types.Filter) (err error) {
	catalog := sqlite.NewCatalog(o.logger)
	if err := catalog.Attach(o.config); err != nil {
		return fmt.Errorf("attach catalog: %w", err)
	}
	defer func() {
		err = errors.Join(err, catalog.Detach())
	}()

	list, err := catalog.Fetch(filter)
	if err != nil {
		return fmt.Errorf("fetch slots: %w", err)
	}

	if o.jsonMode {
		return writeJSON(cmd.OutOrStdout(), list)
	}
	writeSlotTable(cmd.OutOrStdout(), list)
	return nil
}
