package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newInitCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the model directory and its slot directories",
		Long: "Create the model directory with one subdirectory per slot index and\n" +
			"write config.yaml to the config directory if it does not exist yet.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runInit(cmd)
		},
	}
}

func (o *options) runInit(cmd *cobra.Command) error {
	repo := o.repository()

	created := 0
	for i := 0; i < o.config.MaxSlots; i++ {
		dir := repo.SlotDir(i)
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create slot directory %d: %w", i, err)
		}
		created++
	}

	wrote, err := writeConfigIfMissing(o.resolvedConfigDir, o.config)
	if err != nil {
		return err
	}

	o.logger.Info("model directory initialized",
		zap.String("model_dir", o.config.ModelDir),
		zap.Int("slot_dirs_created", created),
		zap.Bool("config_written", wrote))

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s (%d slots, %d created)\n",
		o.config.ModelDir, o.config.MaxSlots, created)
	return nil
}
