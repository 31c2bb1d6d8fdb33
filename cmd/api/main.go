package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"post-notify/httpapi"
	"post-notify/internal"
	"post-notify/notifier"
	"post-notify/repositories"
	"post-notify/runtime"
	"post-notify/runtime/workers"
	"post-notify/services"
)

// Exit codes to provide meaningful status to the operating system or
// service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "post-notify terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so defers (badger close, worker drain) always
// execute before the program exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	endpoints, err := internal.ParsePageEndpoints(config.PageEndpoints)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Pipeline wiring: repository -> dispatcher -> delivery workers
	repo := repositories.NewPostRepository(db, logger)
	dispatcher := runtime.NewDispatcher(logger, repo, config.BufferSize)
	pages := notifier.NewStaticPageDirectory(endpoints)
	webhooks := notifier.NewWebhookNotifier(logger, config.DeliveryTimeout)

	deliveryCfg := runtime.DeliveryConfig{
		Timeout:     config.DeliveryTimeout,
		MaxAttempts: config.DeliveryMaxAttempts,
		Backoff: runtime.Backoff{
			BaseDelay: config.BackoffBaseDelay,
			MaxDelay:  config.BackoffMaxDelay,
		},
	}

	sup := workers.NewSupervisor(logger)
	for i := 0; i < config.NumberOfWorkers; i++ {
		sup.Add(runtime.NewDeliveryWorker(logger, dispatcher.Queue(), repo, pages, webhooks, deliveryCfg))
	}

	service := services.NewPostService(logger, repo, dispatcher)

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	// 5. Start the delivery workers under supervision
	go func() {
		logger.Info("Starting delivery workers...", "count", config.NumberOfWorkers)
		sup.Run(ctx)
	}()

	// 6. HTTP server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:    address,
		Handler: httpapi.NewMux(logger, service),
	}
	go func() {
		logger.Info("Starting HTTP server", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for stop or error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final cleanup (graceful shutdown): stop accepting requests, then
	// drain workers so in-flight deliveries record their outcome.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	sup.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	return options
}
