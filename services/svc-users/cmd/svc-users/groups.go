package main

import (
	"context"
	"fmt"

	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/architeacher/users/services/svc-users/internal/usecases/commands"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:     "groups",
	Short:   "Manage user groups",
	GroupID: "users",
}

var groupsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(cmd, func(ctx context.Context, app *usecases.Application) error {
			group, err := app.Commands.CreateGroup.Handle(ctx, commands.CreateGroupCommand{Name: args[0]})
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), toGroupView(group))
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (%s)\n", group.Name, group.ID)

			return err
		})
	},
}

func init() {
	groupsCmd.AddCommand(groupsCreateCmd)
}
