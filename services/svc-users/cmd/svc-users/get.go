package main

import (
	"context"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/queries"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show a user",
	GroupID: "users",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := model.ParseUserID(args[0])
		if err != nil {
			return err
		}

		return withApplication(cmd, func(ctx context.Context, app *usecases.Application) error {
			user, err := app.Queries.GetUser.Execute(ctx, queries.GetUserQuery{ID: id})
			if err != nil {
				return err
			}

			return printUser(cmd.OutOrStdout(), user, jsonOutput)
		})
	},
}
