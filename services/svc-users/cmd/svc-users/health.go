package main

import (
	"context"
	"errors"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/queries"
	"github.com/spf13/cobra"
)

var errServiceDown = errors.New("service is down")

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check connectivity to the database and cache",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApplication(cmd, func(ctx context.Context, app *usecases.Application) error {
			report, err := app.Queries.FetchHealthReport.Execute(ctx, queries.FetchHealthReportQuery{})
			if err != nil {
				return err
			}

			if jsonOutput {
				err = printJSON(cmd.OutOrStdout(), toHealthView(report))
			} else {
				err = printHealthTable(cmd.OutOrStdout(), report)
			}

			if err != nil {
				return err
			}

			if report.Status == model.HealthStatusDown {
				return errServiceDown
			}

			return nil
		})
	},
}
