package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/player-boosts-cli/internal/adapters/render/status"
	"github.com/bnema/player-boosts-cli/internal/application"
	"github.com/bnema/player-boosts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBoostCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boost",
		Short: "Manage named boost bonuses",
	}

	cmd.AddCommand(
		newBoostSetCmd(app),
		newBoostRemoveCmd(app),
		newBoostListCmd(app),
	)

	return cmd
}

func newBoostSetCmd(app *app) *cobra.Command {
	var subject string
	var resource string
	var boostID string
	var magnitude float64
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Register or replace a boost for a subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			applied, err := app.boosts.RegisterBoost(cmd.Context(), application.RegisterBoostCommand{
				Subject:   domain.SubjectID(subject),
				Resource:  domain.ResourceKind(resource),
				BoostID:   boostID,
				Magnitude: magnitude,
				Duration:  duration,
			})
			if err != nil {
				return err
			}

			if !applied {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No profile for subject %s; boost not applied\n", subject)
				return nil
			}

			if duration > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set boost %s on %s/%s (+%.2f, expires in %s)\n", boostID, subject, resource, magnitude, duration)
				return nil
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set boost %s on %s/%s (+%.2f, permanent)\n", boostID, subject, resource, magnitude)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject ID")
	cmd.Flags().StringVar(&resource, "resource", "", "Resource kind")
	cmd.Flags().StringVar(&boostID, "id", "", "Boost ID")
	cmd.Flags().Float64Var(&magnitude, "magnitude", 0, "Additive multiplier delta")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Boost lifetime (0 for permanent)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("magnitude")

	return cmd
}

func newBoostRemoveCmd(app *app) *cobra.Command {
	var subject string
	var resource string
	var boostID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a boost from a subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.boosts.RemoveBoost(cmd.Context(), application.RemoveBoostCommand{
				Subject:  domain.SubjectID(subject),
				Resource: domain.ResourceKind(resource),
				BoostID:  boostID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed boost %s from %s/%s\n", boostID, subject, resource)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject ID")
	cmd.Flags().StringVar(&resource, "resource", "", "Resource kind")
	cmd.Flags().StringVar(&boostID, "id", "", "Boost ID")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newBoostListCmd(app *app) *cobra.Command {
	var subject string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show boost status for one or all subjects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := loadStatuses(cmd, app, subject)
			if err != nil {
				return err
			}

			return writeStatusesOutput(cmd, app, statuses, asJSON)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject ID (all subjects when omitted)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of the rendered view")

	return cmd
}

func loadStatuses(cmd *cobra.Command, app *app, subject string) ([]application.BoostStatus, error) {
	if subject == "" {
		return app.boosts.StatusAll(cmd.Context())
	}

	status, err := app.boosts.Status(cmd.Context(), domain.SubjectID(subject))
	if err != nil {
		return nil, err
	}

	return []application.BoostStatus{status}, nil
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.BoostStatus, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
