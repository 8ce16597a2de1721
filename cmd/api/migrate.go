package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cat-registry/internal/adapters/storage/postgres"
	"cat-registry/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el schema Postgres embebido",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.DB.DSN == "" {
			return errors.New("db.dsn is required to migrate")
		}

		log := newLogger(cfg)
		defer syncLogger(log)

		db, err := postgres.Open(cfg.DB.DSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer db.Close()

		if err := postgres.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		log.Info("schema applied", nil)
		return nil
	},
}
