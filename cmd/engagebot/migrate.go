package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/d60-Lab/channel-engage/config"
	"github.com/d60-Lab/channel-engage/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ledger tables and unique indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.InitDB(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Printf("✓ migrated %s database\n", cfg.Database.Driver)
		return nil
	},
}
