package di

import (
	"context"
	"errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"logpulse/application/ports"
	"logpulse/application/services"
	"logpulse/infrastructure/config"
	"logpulse/infrastructure/observability"
	"logpulse/internal/simulator"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Telemetry   *observability.Provider
	Instruments *observability.Instruments
	Store       ports.HRStore
	Events      ports.EventPublisher
	Service     *services.HRService
	Router      *chi.Mux
	Simulator   *simulator.Simulator
}

// Shutdown stops the simulator, flushes telemetry and syncs the logger.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.Info("Shutting down container")

	var errs []error
	if c.Simulator != nil {
		if err := c.Simulator.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Telemetry != nil {
		if err := c.Telemetry.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	// Sync on a terminal returns EINVAL
	_ = c.Logger.Sync()

	return errors.Join(errs...)
}
