package main

import (
	"context"
	"fmt"
	"os"

	"github.com/architeacher/users/services/svc-users/internal/runtime"
	"github.com/architeacher/users/services/svc-users/internal/usecases"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:           "svc-users <command>",
	Short:         "Manage users and groups",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "users", Title: "Users:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false

	// Users
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(groupsCmd)

	// System
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
}

// withApplication builds the service for the duration of one command.
func withApplication(cmd *cobra.Command, fn func(ctx context.Context, app *usecases.Application) error) error {
	return runtime.New().Run(cmd.Context(), fn)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
