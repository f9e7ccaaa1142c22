package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pb",
		Short:         "Player Boosts CLI (pb): manage earn-rate boosts and multipliers",
		Long:          "pb (Player Boosts CLI) stores per-player boost bonuses, tracks who is attached to the session, computes earn-rate multipliers, and awards boosted currency from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newBoostCmd(app),
		newMultiplierCmd(app),
		newAwardCmd(app),
		newProfileCmd(app),
		newPresenceCmd(app),
		newLeaderboardCmd(app),
		newSweepCmd(app),
	)

	return rootCmd
}
