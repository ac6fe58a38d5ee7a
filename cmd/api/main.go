package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"logpulse/infrastructure/config"
	"logpulse/infrastructure/di"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("hr-api: %v", err)
	}
}

func run(args []string) error {
	var (
		addr      string
		simulate  bool
		simConfig string
	)

	flagSet := pflag.NewFlagSet("hr-api", pflag.ContinueOnError)
	flagSet.StringVar(&addr, "addr", "", "listen address (overrides SERVER_ADDRESS)")
	flagSet.BoolVar(&simulate, "simulate", true, "run the background traffic simulator (overrides SIM_ENABLED)")
	flagSet.StringVar(&simConfig, "sim-config", "", "YAML overlay for the simulator, reloaded on change (overrides SIM_CONFIG_FILE)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// Initialize context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if flagSet.Changed("addr") {
		cfg.ServerAddress = addr
	}
	if flagSet.Changed("simulate") {
		cfg.Simulator.Enabled = simulate && !cfg.IsLambda
	}
	if flagSet.Changed("sim-config") {
		cfg.Simulator.ConfigFile = simConfig
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize dependency container
	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer cleanup()
	logger := container.Logger

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      container.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.Bool("simulator", cfg.Simulator.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	if cfg.Simulator.Enabled {
		if cfg.Simulator.ConfigFile != "" {
			watcher, err := di.WatchSimulatorOverlay(cfg.Simulator.ConfigFile, container.Simulator, logger)
			if err != nil {
				logger.Warn("Simulator overlay disabled", zap.String("path", cfg.Simulator.ConfigFile), zap.Error(err))
			} else {
				defer watcher.Stop()
			}
		}
		container.Simulator.Start()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
		runErr = err
	}

	// Graceful shutdown
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := container.Simulator.Stop(shutdownCtx); err != nil {
		logger.Error("Simulator shutdown error", zap.Error(err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := container.Shutdown(shutdownCtx); err != nil {
		log.Printf("Container shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return runErr
}
