package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ownby4levy/topup-gateway/internal/application/services"
	"github.com/ownby4levy/topup-gateway/internal/config"
	"github.com/ownby4levy/topup-gateway/internal/infrastructure/persistence/postgres"
	"github.com/ownby4levy/topup-gateway/internal/infrastructure/truemoney"
	"github.com/ownby4levy/topup-gateway/internal/interfaces/rest/handlers"
	"github.com/ownby4levy/topup-gateway/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting topup service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	if err := postgres.Migrate(cfg.Database.ConnString()); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	logRepo := postgres.NewTopupLogRepository(db)
	creditCoordinator := postgres.NewCreditCoordinator(db)

	client := truemoney.NewClient(cfg.TrueMoney)
	retryClient := truemoney.NewRetryClient(client, cfg.Retry, logger)

	topupService := services.NewTopupService(
		userRepo,
		logRepo,
		creditCoordinator,
		retryClient,
		cfg.Topup.MaxAmount,
		logger,
	)

	h := handlers.NewHandlers(topupService, retryClient, db, logger)

	mux := http.NewServeMux()
	h.Register(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.WriteTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
