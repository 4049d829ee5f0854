package main

import (
	"contech_bot/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(v)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx := cmd.Context()
			dbPool, err := config.ConnectDB(ctx, cfg.Database, logger)
			if err != nil {
				logger.Error("failed to connect to database", zap.Error(err))
				return err
			}
			defer dbPool.Close()

			return config.AutoMigrate(ctx, dbPool, logger)
		},
	}
}
