package cmd

import (
	"fmt"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLeaderboardCmd(app *app) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "leaderboard <resource>",
		Short: "Rank subjects by balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.leaderboard.Standings(cmd.Context(), domain.ResourceKind(args[0]), top)
			if err != nil {
				return err
			}

			for _, entry := range entries {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d) %s\t%s\n",
					entry.Rank, sanitizeForTerminal(entry.Name), domain.FormatAmount(entry.Balance))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "Limit to the top N subjects (0 for all)")

	return cmd
}
