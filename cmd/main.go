package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/johnmclaughlin205/Mortgages/internal/api"
	"github.com/johnmclaughlin205/Mortgages/internal/config"
	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"
	"github.com/johnmclaughlin205/Mortgages/internal/infrastructure/database/postgres"
	"github.com/johnmclaughlin205/Mortgages/internal/infrastructure/database/sqlite"
	"github.com/johnmclaughlin205/Mortgages/internal/infrastructure/logging"

	"github.com/spf13/viper"
)

func main() {
	cfg, logger := initializeApp()

	repo, closeStorage := initializeStorage(cfg, logger)
	defer closeStorage()

	customerService := customer.NewCustomerService(repo, logger)
	router := api.SetupRouter(customerService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

// initializeStorage opens the configured backend and returns the repository
// together with a release function for the underlying handle.
func initializeStorage(cfg *config.Config, logger *slog.Logger) (customer.CustomerRepository, func()) {
	switch strings.ToLower(cfg.Database.Driver) {
	case "postgres":
		logger.Info("Initializing PostgreSQL connection pool...")
		dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
		if err != nil {
			logger.Error("Failed to initialize database connection pool", "error", err)
			os.Exit(1)
		}
		return postgres.NewCustomerRepository(dbPool, logger), func() {
			logger.Info("Closing database connection pool...")
			dbPool.Close()
		}
	case "", "sqlite":
		logger.Info("Initializing SQLite database...")
		db, err := sqlite.NewDB(context.Background(), cfg.Database, logger)
		if err != nil {
			logger.Error("Failed to initialize SQLite database", "error", err)
			os.Exit(1)
		}
		return sqlite.NewCustomerRepository(db, logger), func() {
			logger.Info("Closing SQLite database...")
			db.Close()
		}
	default:
		logger.Error("Unknown database driver", "driver", cfg.Database.Driver)
		os.Exit(1)
		return nil, nil
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}
