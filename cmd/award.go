package cmd

import (
	"fmt"
	"strconv"

	"github.com/bnema/player-boosts-cli/internal/application"
	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAwardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "award <subject> <resource> <amount>",
		Short: "Credit a boosted amount to a subject's balance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[2])
			}

			award, err := app.currency.Award(cmd.Context(), application.AwardCommand{
				Subject:  domain.SubjectID(args[0]),
				Resource: domain.ResourceKind(args[1]),
				Amount:   amount,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Credited %s %s to %s (base %s x%.2f)\n",
				domain.FormatAmount(award.Credited), award.Resource, award.Subject,
				domain.FormatAmount(award.Base), award.Multiplier)
			return nil
		},
	}
}
