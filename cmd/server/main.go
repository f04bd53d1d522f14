// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	bountyRouter "github.com/starbounty/bounty-service/internal/bounty/router"
	appConfig "github.com/starbounty/bounty-service/internal/config"
	contributorRouter "github.com/starbounty/bounty-service/internal/contributor/router"
	"github.com/starbounty/bounty-service/internal/database/database"
	"github.com/starbounty/bounty-service/internal/database/migrate"
	"github.com/starbounty/bounty-service/internal/escrow"
	"github.com/starbounty/bounty-service/internal/github"
	"github.com/starbounty/bounty-service/internal/health"
	"github.com/starbounty/bounty-service/internal/middleware"
	webhookRouter "github.com/starbounty/bounty-service/internal/webhook/router"
	"github.com/starbounty/bounty-service/internal/worker"
	"github.com/starbounty/bounty-service/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := appConfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.New()
	if err != nil {
		zapLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zapLogger.Errorw("failed to close database connection", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		zapLogger.Fatalw("failed to run migrations", "error", err)
	}

	githubClient := github.New(cfg.GitHub, zapLogger)
	escrowClient := escrow.New(cfg.Escrow, zapLogger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.Logger(zapLogger), middleware.Recovery(zapLogger))

	health.RegisterRoutes(r, db)
	bountySvc := bountyRouter.RegisterRoutes(r, db, githubClient, escrowClient, zapLogger)
	contributorRouter.RegisterRoutes(r, db, githubClient, zapLogger)
	webhookRouter.RegisterRoutes(r, db, cfg.GitHub.WebhookSecret, zapLogger)

	reconciler, err := worker.New(cfg.Worker, bountySvc, zapLogger)
	if err != nil {
		zapLogger.Fatalw("failed to create reconciliation worker", "error", err)
	}
	if reconciler != nil {
		reconciler.Start()
		defer func() {
			if err := reconciler.Stop(); err != nil {
				zapLogger.Errorw("failed to stop reconciliation worker", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zapLogger.Infow("starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Errorw("forced shutdown", "error", err)
	}

	zapLogger.Infow("server stopped")
}
