package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the messages table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := openStore(configPath)
			if err != nil {
				return err
			}
			if err := s.Migrate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated table %s\n", cfg.Store.Table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "postbox.yaml", "path to Postbox config file")
	return cmd
}
