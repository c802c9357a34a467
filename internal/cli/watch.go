package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eliasbuenosdias/voice-changer/internal/watch"
)

// slotChange is the JSON form of a watch report.
type slotChange struct {
	Slot    int    `json:"slot"`
	Removed bool   `json:"removed"`
	Type    string `json:"voiceChangerType,omitempty"`
	Name    string `json:"name,omitempty"`
	Error   string `json:"error,omitempty"`
}

func newWatchCmd(o *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report slot descriptor changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return o.runWatch(ctx, cmd, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before a change is reported")
	return cmd
}

func (o *options) runWatch(ctx context.Context, cmd *cobra.Command, debounce time.Duration) error {
	w, err := watch.New(o.config, watch.WithDebounce(debounce), watch.WithLogger(o.logger))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	repo := o.repository()
	out := cmd.OutOrStdout()
	for ev := range w.Events() {
		change := slotChange{Slot: ev.Index, Removed: ev.Removed}
		if !ev.Removed {
			slot, err := repo.LoadSlot(ev.Index)
			if err != nil {
				o.logger.Warn("changed slot is unreadable", zap.Int("slot", ev.Index), zap.Error(err))
				change.Error = err.Error()
			} else {
				change.Type = typeLabel(slot)
				change.Name = slot.Base().Name
			}
		}

		if o.jsonMode {
			if err := writeJSON(out, change); err != nil {
				return err
			}
			continue
		}
		switch {
		case change.Removed:
			fmt.Fprintf(out, "slot %d: removed\n", change.Slot)
		case change.Error != "":
			fmt.Fprintf(out, "slot %d: error: %s\n", change.Slot, change.Error)
		default:
			fmt.Fprintf(out, "slot %d: %s %q\n", change.Slot, change.Type, change.Name)
		}
	}
	return <-errc
}
