package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"batepapo/internal/app/db"
	"batepapo/internal/configs"
	"batepapo/internal/pkg/logx"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending PostgreSQL migrations",
	Long: `Apply the embedded schema migrations to the database named by DATABASE_URL
and exit. The serve command applies them too when STORE_DRIVER=postgres.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := configs.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if cfg.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}

		logx.InitGlobalLogger(cfg.IsDevelopment())

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		if err := db.Migrate(ctx, cfg.DatabaseDSN); err != nil {
			logx.Fatal(err, "Migration failed")
		}
		return nil
	},
}
