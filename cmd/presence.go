package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newPresenceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presence",
		Short: "Track which subjects are attached to the session",
	}

	cmd.AddCommand(
		newPresenceAttachCmd(app),
		newPresenceDetachCmd(app),
		newPresenceListCmd(app),
	)

	return cmd
}

func newPresenceAttachCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <subject>",
		Short: "Mark a subject as present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.presence.OnSubjectAttached(cmd.Context(), domain.SubjectID(args[0])); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Attached subject %s\n", args[0])
			return nil
		},
	}
}

func newPresenceDetachCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detach <subject>",
		Short: "Mark a subject as gone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.presence.OnSubjectDetached(cmd.Context(), domain.SubjectID(args[0])); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Detached subject %s\n", args[0])
			return nil
		},
	}
}

func newPresenceListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the current roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster, err := app.presence.Present(cmd.Context())
			if err != nil {
				return err
			}

			if len(roster.Present) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "present: none")
				return nil
			}

			subjects := make([]string, 0, len(roster.Present))
			for _, subject := range roster.Present {
				subjects = append(subjects, string(subject))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "present: %s\n", strings.Join(subjects, ", "))
			return nil
		},
	}
}
