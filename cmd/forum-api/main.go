package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/itchan-dev/forum/internal/config"
	"github.com/itchan-dev/forum/internal/logger"
	"github.com/itchan-dev/forum/internal/router"
	"github.com/itchan-dev/forum/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	if err := run(cfg); err != nil {
		logger.Log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("server exited gracefully")
}

// run returns instead of exiting so deferred cleanup always happens.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.Close()

	srv := &http.Server{
		Addr:         cfg.Public.HttpAddr,
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Public.ReadTimeout,
		WriteTimeout: cfg.Public.WriteTimeout,
		IdleTimeout:  cfg.Public.ReadTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Log.Info("shutting down server")
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Public.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("server forced to shutdown: %w", err))
	}
	return runErr
}
