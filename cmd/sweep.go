package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSweepCmd(app *app) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired boosts from stored profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			swept, err := runSweepSpinner(cmd.Context(), cmd.ErrOrStderr(), app.boosts.SweepExpired)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Swept %d expired boost(s)\n", swept)

			if !watch {
				return nil
			}

			return watchSweep(cmd, app, interval)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep sweeping on an interval")
	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "Sweep interval in watch mode")

	return cmd
}

func watchSweep(cmd *cobra.Command, app *app, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-cmd.Context().Done():
			err := cmd.Context().Err()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case <-ticker.C:
			swept, err := app.boosts.SweepExpired(cmd.Context())
			if err != nil {
				return err
			}
			if swept > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Swept %d expired boost(s)\n", swept)
			}
		}
	}
}
