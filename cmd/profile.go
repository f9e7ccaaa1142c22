package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage subject profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(app),
		newProfileAddCmd(app),
		newProfileRenameCmd(app),
		newProfileRebirthCmd(app),
	)

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.profiles.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, profile := range profiles {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\trebirths:%d\n",
					profile.ID, sanitizeForTerminal(profile.Name), profile.Rebirths)
			}

			return nil
		},
	}
}

func newProfileAddCmd(app *app) *cobra.Command {
	var id string
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := app.profiles.Create(cmd.Context(), domain.SubjectID(id), name)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created profile %s (%s)\n",
				profile.ID, sanitizeForTerminal(profile.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Subject ID (auto-assigned when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")

	return cmd
}

func newProfileRenameCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <subject>",
		Short: "Rename a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.profiles.SetName(cmd.Context(), domain.SubjectID(args[0]), name); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed profile %s to %s\n",
				args[0], sanitizeForTerminal(name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProfileRebirthCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rebirth <subject>",
		Short: "Advance a subject's rebirth milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := app.profiles.Rebirth(cmd.Context(), domain.SubjectID(args[0]))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Subject %s is now at rebirth %d\n", args[0], count)
			return nil
		},
	}
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
