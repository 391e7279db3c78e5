package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storyverse/server/config"
	"github.com/storyverse/server/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply Postgres schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			conn, err := DB(cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(context.Background(), conn); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
