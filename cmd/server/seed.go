package main

import (
	"contech_bot/internal/config"
	"contech_bot/internal/repository"
	"contech_bot/internal/seed"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newSeedCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo contractor and its job postings",
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

			if err := config.AutoMigrate(ctx, dbPool, logger); err != nil {
				return err
			}

			jobRepo, closeCache := newJobRepository(ctx, cfg, dbPool, logger)
			defer closeCache()

			_, err = seed.Run(ctx, repository.NewUserRepository(dbPool), jobRepo, logger)
			return err
		},
	}
}
