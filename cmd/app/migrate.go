package main

import (
	"fulfillment/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Run: func(*cobra.Command, []string) {
		db := openDatabase(getConfigs())
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Info("Schema is up to date")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
