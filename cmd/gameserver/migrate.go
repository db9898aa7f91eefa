package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return migrate(cmd.Context())
	},
}

// migrate opens the configured backend, which applies pending migrations.
func migrate(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	store.close()
	slog.Info("database migrations applied", "driver", cfg.StorageDriver)
	return nil
}
