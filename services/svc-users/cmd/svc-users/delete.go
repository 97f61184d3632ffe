package main

import (
	"context"
	"fmt"

	"github.com/architeacher/users/services/svc-users/internal/domain/model"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/commands"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a user",
	GroupID: "users",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := model.ParseUserID(args[0])
		if err != nil {
			return err
		}

		return withApplication(cmd, func(ctx context.Context, app *usecases.Application) error {
			result, err := app.Commands.DeleteUser.Handle(ctx, commands.DeleteUserCommand{ID: id})
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{"id": id.String(), "deleted": result.Success})
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)

			return err
		})
	},
}
