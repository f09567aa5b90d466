package main

import (
	"context"
	"fmt"
	"time"

	"github.com/postie/waitlist/config"
	"github.com/postie/waitlist/internal/log"
	"github.com/postie/waitlist/pkg/migrations"
	"github.com/postie/waitlist/pkg/utils"
	"github.com/spf13/cobra"
)

func newMigrateCommand(logger *log.Logger) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		Long:  "Applies pending migrations from MIGRATIONS_DIR (default migrations/<DB_DRIVER>) to the configured database.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbCfg := config.NewDBConfig()
			db, err := config.NewDatabase(logger, dbCfg)
			if err != nil {
				logger.Error("Failed to connect to database for migration", "error", err.Error())
				return err
			}

			sqlDB, err := db.DB()
			if err != nil {
				logger.Error("Failed to get SQL DB instance for migration", "error", err.Error())
				return err
			}
			defer func() {
				if err := sqlDB.Close(); err != nil {
					logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
				}
			}()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			err = migrations.Up(ctx, sqlDB, migrations.Config{
				Driver: dbCfg.Driver,
				Dir:    utils.GetEnvTrimmed("MIGRATIONS_DIR"),
				Logger: logger,
			})
			if err != nil {
				logger.Error("Database migration failed", "error", err.Error())
				return err
			}

			logger.Info("Database migrations completed", "driver", dbCfg.Driver)
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Abort if migrations take longer than this")

	return cmd
}
