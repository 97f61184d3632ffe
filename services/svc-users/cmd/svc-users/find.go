package main

import (
	"context"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/queries"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find users matching a filter",
	Long: `Find users matching a filter. Every flag is optional and an empty
filter returns all users. Dates accept RFC3339 or YYYY-MM-DD (midnight UTC).
With both bounds set the range includes its endpoints.`,
	Example: `  svc-users find --group eng --created-from 2023-01-01
  svc-users find --created-from 2023-01-01 --created-to 2024-01-01 --json`,
	GroupID: "users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		spec, err := model.ParseFilterArgs(filterArgsFromFlags(cmd))
		if err != nil {
			return err
		}

		return withApplication(cmd, func(ctx context.Context, app *usecases.Application) error {
			users, err := app.Queries.FindUsers.Execute(ctx, queries.FindUsersQuery{Spec: spec})
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), toUserViews(users))
			}

			return printUserTable(cmd.OutOrStdout(), users)
		})
	},
}

func filterArgsFromFlags(cmd *cobra.Command) model.FilterArgs {
	id, _ := cmd.Flags().GetString("id")
	group, _ := cmd.Flags().GetString("group")
	from, _ := cmd.Flags().GetString("created-from")
	to, _ := cmd.Flags().GetString("created-to")

	return model.FilterArgs{
		ID:          id,
		GroupName:   group,
		CreatedFrom: from,
		CreatedTo:   to,
	}
}

// A date-only bound is midnight UTC, so --created-to 2023-12-31 excludes that day.
const dateBoundUsage = " (RFC3339 or YYYY-MM-DD, midnight UTC; exclusive alone, inclusive when both bounds are set)"

func init() {
	findCmd.Flags().String("id", "", "filter by user ID")
	findCmd.Flags().StringP("group", "g", "", "filter by group name")
	findCmd.Flags().String("created-from", "", "only users created after this time"+dateBoundUsage)
	findCmd.Flags().String("created-to", "", "only users created before this time"+dateBoundUsage)
}
