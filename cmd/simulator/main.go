// simulator drives HR traffic against a running API without serving one itself.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
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
		log.Fatalf("hr-simulator: %v", err)
	}
}

func run(args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.ServiceName = "hr-simulator"

	flagSet := pflag.NewFlagSet("hr-simulator", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.Simulator.BaseURL, "base-url", cfg.Simulator.BaseURL, "API base URL to drive")
	flagSet.DurationVar(&cfg.Simulator.MinWait, "min-wait", cfg.Simulator.MinWait, "minimum pause between actions")
	flagSet.DurationVar(&cfg.Simulator.MaxWait, "max-wait", cfg.Simulator.MaxWait, "maximum pause between actions")
	flagSet.Int64Var(&cfg.Simulator.Seed, "seed", cfg.Simulator.Seed, "random seed, 0 for a random sequence")
	flagSet.StringVar(&cfg.Simulator.ConfigFile, "sim-config", cfg.Simulator.ConfigFile, "YAML overlay, reloaded on change")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg.Simulator.Enabled = true
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, cleanup, err := di.ProvideTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer cleanup()
	logger, err := di.ProvideLogger(cfg, telemetry)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	instruments, err := di.ProvideInstruments(telemetry)
	if err != nil {
		return fmt.Errorf("failed to create instruments: %w", err)
	}

	sim := di.ProvideSimulator(cfg, logger, instruments, di.ProvideTracer(telemetry))
	if cfg.Simulator.ConfigFile != "" {
		watcher, err := di.WatchSimulatorOverlay(cfg.Simulator.ConfigFile, sim, logger)
		if err != nil {
			logger.Warn("Simulator overlay disabled", zap.String("path", cfg.Simulator.ConfigFile), zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	sim.Start()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var errs []error
	errs = append(errs, sim.Stop(shutdownCtx))
	errs = append(errs, telemetry.Shutdown(shutdownCtx))
	_ = logger.Sync()
	return errors.Join(errs...)
}
