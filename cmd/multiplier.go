package cmd

import (
	"fmt"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newMultiplierCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "multiplier <subject> <resource>",
		Short: "Compute the current earn-rate multiplier",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total := app.boosts.ComputeMultiplier(cmd.Context(), domain.SubjectID(args[0]), domain.ResourceKind(args[1]))
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "x%.2f\n", total)
			return err
		},
	}
}
