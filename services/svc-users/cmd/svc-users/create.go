package main

import (
	"context"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/commands"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create <email>",
	Short:   "Create a user",
	Example: `  svc-users create jane@example.com --group-id 0190a6e4-4f6c-7a54-b1c1-0f1e2d3c4b5a`,
	GroupID: "users",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, _ := cmd.Flags().GetString("group-id")

		return withApplication(cmd, func(ctx context.Context, app *usecases.Application) error {
			user, err := app.Commands.CreateUser.Handle(ctx, commands.CreateUserCommand{
				Input: model.UserInput{Email: args[0], GroupID: groupID},
			})
			if err != nil {
				return err
			}

			return printUser(cmd.OutOrStdout(), user, jsonOutput)
		})
	},
}

func init() {
	createCmd.Flags().String("group-id", "", "assign the user to this group")
}
