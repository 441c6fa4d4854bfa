package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/core/services"
	"github.com/viaensino/via_ensino_app/internal/handlers"
	"github.com/viaensino/via_ensino_app/internal/middleware"
	"github.com/viaensino/via_ensino_app/internal/repositories/database/pgsql"
	"github.com/viaensino/via_ensino_app/internal/utils"
	"github.com/viaensino/via_ensino_app/pkg/config"
	"github.com/viaensino/via_ensino_app/pkg/database"
)

// @title Via Ensino Backend API
// @version 1.0
// @description Learning platform backend: trainings, sectors, enrollments, subscriptions and entitlement resolution.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.Default(),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(&repos, cfg)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go runSubscriptionSweeper(sweeperCtx, serviceContainer, cfg, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	stopSweeper()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server exited")
}

// runMigrations applies all pending up migrations. Uses a temporary
// database/sql connection via the pgx stdlib driver so golang-migrate can
// share the same driver as the application pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}
	return nil
}

// runSubscriptionSweeper periodically expires subscriptions whose end date has
// passed. The update is idempotent, so overlapping runs are harmless.
func runSubscriptionSweeper(ctx context.Context, sc *portssvc.ServiceContainer, cfg *config.Config, logger *slog.Logger) {
	interval := time.Duration(cfg.SubscriptionSweepIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			affected, err := sc.Subscription.ExpireOverdue(sweepCtx, time.Now().UTC())
			cancel()
			if err != nil {
				logger.Error("Subscription sweep failed", slog.String("error", err.Error()))
				continue
			}
			if affected > 0 {
				logger.Info("Expired overdue subscriptions", slog.Int64("count", affected))
			}
		}
	}
}
