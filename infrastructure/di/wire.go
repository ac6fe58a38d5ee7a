//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"logpulse/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideTelemetry,
	ProvideLogger,
	ProvideInstruments,
	ProvideTracer,
	ProvideStore,
	ProvideEventPublisher,
	ProvideHRService,
	ProvideRouter,
	ProvideSimulator,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
