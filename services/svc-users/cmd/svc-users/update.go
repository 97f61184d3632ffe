package main

import (
	"context"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/commands"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id> <email>",
	Short: "Replace a user's email and group",
	Long: `Replace a user's email and group. Omitting --group-id removes the user
from its current group.`,
	GroupID: "users",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := model.ParseUserID(args[0])
		if err != nil {
			return err
		}

		groupID, _ := cmd.Flags().GetString("group-id")

		return withApplication(cmd, func(ctx context.Context, app *usecases.Application) error {
			user, err := app.Commands.UpdateUser.Handle(ctx, commands.UpdateUserCommand{
				ID:    id,
				Input: model.UserInput{Email: args[1], GroupID: groupID},
			})
			if err != nil {
				return err
			}

			return printUser(cmd.OutOrStdout(), user, jsonOutput)
		})
	},
}

func init() {
	updateCmd.Flags().String("group-id", "", "assign the user to this group")
}
