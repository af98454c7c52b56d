package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"storefront-api/config"
	"storefront-api/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		pg, err := store.NewPostgresStore(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("DB connection failed: %w", err)
		}
		defer pg.Close()

		if err := pg.Migrate(cmd.Context()); err != nil {
			return fmt.Errorf("failed running migrations: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Database migrations executed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
