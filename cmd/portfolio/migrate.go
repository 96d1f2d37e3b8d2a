package main

import (
	"github.com/spf13/cobra"

	"github.com/4liaghaie/sait/internal/config"
	"github.com/4liaghaie/sait/internal/db"
	"github.com/4liaghaie/sait/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver, log); err != nil {
				return err
			}
			version, err := db.Status(database, cfg.DB.Driver)
			if err != nil {
				return err
			}
			log.Info("migrations complete", logger.Int64("version", version))
			return nil
		},
	}
}
