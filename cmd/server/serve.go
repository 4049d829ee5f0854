package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"contech_bot/internal/cache"
	"contech_bot/internal/config"
	"contech_bot/internal/handler"
	"contech_bot/internal/middleware"
	"contech_bot/internal/repository"
	"contech_bot/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook and admin HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(v)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			return serve(cmd.Context(), cfg, logger)
		},
	}

	serveCmd.Flags().StringP("port", "p", "", "port to listen on (overrides server.port)")
	_ = v.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	return serveCmd
}

// newJobRepository returns the postgres job repository, wrapped with the
// redis cache when one is configured. The returned func releases the cache.
func newJobRepository(ctx context.Context, cfg *config.Config, db repository.DBTX, logger *zap.Logger) (repository.JobRepository, func()) {
	jobRepo := repository.NewJobRepository(db)
	if !cfg.Redis.Enabled() {
		return jobRepo, func() {}
	}

	redisCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password)
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis is unreachable, open postings will be read from the database until it recovers",
			zap.String("addr", cfg.Redis.Addr),
			zap.Error(err),
		)
	}
	closeCache := func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	return repository.NewCachedJobRepository(jobRepo, redisCache, cfg.Redis.CacheTTL, logger), closeCache
}

func newRouter(cfg *config.Config, dbPool *pgxpool.Pool, jobRepo repository.JobRepository, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)

	// --- Initialize Services ---
	conversationService := service.NewConversationService(userRepo, jobRepo, cfg.Matching, logger)
	jobService := service.NewJobService(jobRepo, userRepo)
	userService := service.NewUserService(userRepo, jobRepo, logger)

	// --- Initialize Handlers ---
	webhookHandler := handler.NewWebhookHandler(conversationService, cfg.Twilio, logger)
	jobHandler := handler.NewJobHandler(jobService, logger)
	userHandler := handler.NewUserHandler(userService, logger)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Metrics(),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		}),
	)

	// --- Register Routes ---
	webhookHandler.RegisterWebhookRoutes(router)
	router.GET("/health", handler.Health(dbPool))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api/v1")
	jobHandler.RegisterJobRoutes(apiGroup)
	userHandler.RegisterUserRoutes(apiGroup)

	return router
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(ctx, dbPool, logger); err != nil {
		return err
	}

	if !cfg.Twilio.Configured() {
		logger.Warn("twilio credentials are not configured, /webhook will answer with 500")
	}

	jobRepo, closeCache := newJobRepository(ctx, cfg, dbPool, logger)
	defer closeCache()

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: newRouter(cfg, dbPool, jobRepo, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exiting")
	return nil
}
