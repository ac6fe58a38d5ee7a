package di

import (
	"context"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"logpulse/application/ports"
	"logpulse/application/services"
	"logpulse/infrastructure/config"
	"logpulse/infrastructure/messaging"
	"logpulse/infrastructure/messaging/eventbridge"
	"logpulse/infrastructure/observability"
	"logpulse/infrastructure/persistence/memory"
	"logpulse/interfaces/http/rest"
	"logpulse/internal/simulator"
)

const telemetryShutdownTimeout = 5 * time.Second

// ProvideTelemetry builds the trace, metric and log pipelines. The cleanup
// shuts them down.
func ProvideTelemetry(ctx context.Context, cfg *config.Config) (*observability.Provider, func(), error) {
	provider, err := observability.Setup(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}
	return provider, cleanup, nil
}

// ProvideLogger builds the zap logger bridged into the OTel log pipeline.
func ProvideLogger(cfg *config.Config, telemetry *observability.Provider) (*zap.Logger, error) {
	logger, err := observability.NewLogger(observability.LoggerConfig{
		ServiceName: cfg.ServiceName,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	}, telemetry.LoggerProvider)
	if err != nil {
		return nil, err
	}
	return logger.Named("logpulse").With(
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Environment),
	), nil
}

// ProvideInstruments creates the metric instruments on the service meter.
func ProvideInstruments(telemetry *observability.Provider) (*observability.Instruments, error) {
	return observability.NewInstruments(telemetry.Meter())
}

// ProvideTracer returns the service tracer.
func ProvideTracer(telemetry *observability.Provider) trace.Tracer {
	return telemetry.Tracer()
}

// ProvideStore returns the in-memory HR store.
func ProvideStore() ports.HRStore {
	return memory.NewHRStore()
}

// ProvideEventPublisher sends events to EventBridge when a bus is configured
// and to the log otherwise.
func ProvideEventPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.EventPublisher, error) {
	if cfg.EventBusName == "" {
		return messaging.NewLogPublisher(logger), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	logger.Info("Publishing domain events to EventBridge", zap.String("eventBus", cfg.EventBusName))
	return eventbridge.NewPublisher(awseventbridge.NewFromConfig(awsCfg), cfg.EventBusName, logger), nil
}

// ProvideHRService wires the HR application service.
func ProvideHRService(
	store ports.HRStore,
	publisher ports.EventPublisher,
	instruments *observability.Instruments,
	tracer trace.Tracer,
	logger *zap.Logger,
) *services.HRService {
	return services.NewHRService(store, publisher, instruments, tracer, logger.Named("app"))
}

// ProvideRouter builds the HTTP router.
func ProvideRouter(
	cfg *config.Config,
	service *services.HRService,
	instruments *observability.Instruments,
	tracer trace.Tracer,
	telemetry *observability.Provider,
	logger *zap.Logger,
) *chi.Mux {
	routerConfig := rest.RouterConfig{
		ServiceName: cfg.ServiceName,
		EnableCORS:  cfg.EnableCORS,
	}
	if cfg.EnablePrometheus {
		routerConfig.MetricsHandler = telemetry.MetricsHandler()
	}
	return rest.NewRouter(service, instruments, tracer, routerConfig, logger).Setup()
}

// ProvideSimulator builds the traffic simulator. It is not started here.
func ProvideSimulator(
	cfg *config.Config,
	logger *zap.Logger,
	instruments *observability.Instruments,
	tracer trace.Tracer,
) *simulator.Simulator {
	return simulator.New(SimulatorOptions(cfg.Simulator), logger, instruments, tracer)
}

// SimulatorOptions maps simulator configuration onto simulator options.
func SimulatorOptions(sc config.SimulatorConfig) simulator.Options {
	return simulator.Options{
		BaseURL: sc.BaseURL,
		MinWait: sc.MinWait,
		MaxWait: sc.MaxWait,
		Timeout: sc.RequestTimeout,
		Seed:    sc.Seed,
	}
}
