package main

import (
	"github.com/architeacher/users/services/svc-users/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Print the effective configuration without credentials",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Init()
		if err != nil {
			return err
		}

		return config.DumpConfig(cmd.OutOrStdout(), cfg)
	},
}
