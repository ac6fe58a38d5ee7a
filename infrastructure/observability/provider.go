package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"logpulse/infrastructure/config"
)

// Provider owns the signal providers and their exporters.
type Provider struct {
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	LoggerProvider otellog.LoggerProvider

	// Registry backs the /metrics endpoint; nil when Prometheus is disabled.
	Registry *prometheus.Registry

	serviceName string
	shutdowns   []func(context.Context) error
	flushes     []func(context.Context) error
	once        sync.Once
	shutdownErr error
}

// Setup builds and installs the global telemetry providers.
func Setup(ctx context.Context, cfg *config.Config) (*Provider, error) {
	otel.SetTextMapPropagator(createPropagator())

	if cfg.Telemetry.Disabled {
		p := &Provider{
			TracerProvider: tracenoop.NewTracerProvider(),
			MeterProvider:  metricnoop.NewMeterProvider(),
			LoggerProvider: lognoop.NewLoggerProvider(),
			serviceName:    cfg.ServiceName,
		}
		p.installGlobals()
		return p, nil
	}

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	p := &Provider{serviceName: cfg.ServiceName}

	// Traces
	spanExporters, err := newSpanExporters(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to create span exporters: %w", err)
	}
	traceOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(createSampler(cfg.Telemetry.SampleRate)),
	}
	for _, exp := range spanExporters {
		traceOpts = append(traceOpts, sdktrace.WithBatcher(exp))
	}
	tp := sdktrace.NewTracerProvider(traceOpts...)
	p.TracerProvider = tp
	p.shutdowns = append(p.shutdowns, tp.Shutdown)
	p.flushes = append(p.flushes, tp.ForceFlush)

	// Metrics
	metricExporters, err := newMetricExporters(ctx, cfg.Telemetry)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create metric exporters: %w", err)
	}
	meterOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, exp := range metricExporters {
		meterOpts = append(meterOpts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Telemetry.MetricsInterval)),
		))
	}
	if cfg.EnablePrometheus {
		reg := prometheus.NewRegistry()
		promReader, err := otelprom.New(otelprom.WithRegisterer(reg))
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, fmt.Errorf("failed to create prometheus reader: %w", err)
		}
		meterOpts = append(meterOpts, sdkmetric.WithReader(promReader))
		p.Registry = reg
	}
	mp := sdkmetric.NewMeterProvider(meterOpts...)
	p.MeterProvider = mp
	p.shutdowns = append(p.shutdowns, mp.Shutdown)
	p.flushes = append(p.flushes, mp.ForceFlush)

	// Logs
	logExporters, err := newLogExporters(ctx, cfg.Telemetry)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create log exporters: %w", err)
	}
	logOpts := []sdklog.LoggerProviderOption{sdklog.WithResource(res)}
	for _, exp := range logExporters {
		logOpts = append(logOpts, sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)))
	}
	lp := sdklog.NewLoggerProvider(logOpts...)
	p.LoggerProvider = lp
	p.shutdowns = append(p.shutdowns, lp.Shutdown)
	p.flushes = append(p.flushes, lp.ForceFlush)

	p.installGlobals()
	return p, nil
}

func (p *Provider) installGlobals() {
	otel.SetTracerProvider(p.TracerProvider)
	otel.SetMeterProvider(p.MeterProvider)
	global.SetLoggerProvider(p.LoggerProvider)
}

// Tracer returns a tracer named after the service.
func (p *Provider) Tracer() trace.Tracer {
	return p.TracerProvider.Tracer(p.serviceName)
}

// Meter returns a meter named after the service.
func (p *Provider) Meter() metric.Meter {
	return p.MeterProvider.Meter(p.serviceName)
}

// MetricsHandler serves the Prometheus registry, or nil when Prometheus is disabled.
func (p *Provider) MetricsHandler() http.Handler {
	if p.Registry == nil {
		return nil
	}
	return promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})
}

// ForceFlush exports everything buffered so far without stopping the providers.
func (p *Provider) ForceFlush(ctx context.Context) error {
	var errs []error
	for _, flush := range p.flushes {
		if err := flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown flushes and stops every provider. Later calls return the first result.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.once.Do(func() {
		var errs []error
		for _, shutdown := range p.shutdowns {
			if err := shutdown(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		p.shutdownErr = errors.Join(errs...)
	})
	return p.shutdownErr
}

// createResource describes this process to the backends
func createResource(cfg *config.Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	}

	if functionName := os.Getenv("AWS_LAMBDA_FUNCTION_NAME"); functionName != "" {
		attrs = append(attrs,
			attribute.String("cloud.provider", "aws"),
			attribute.String("cloud.platform", "aws_lambda"),
			attribute.String("faas.name", functionName),
			attribute.String("cloud.region", cfg.AWSRegion),
		)
	}

	if hostname, err := os.Hostname(); err == nil {
		attrs = append(attrs, semconv.HostName(hostname))
	}

	return resource.NewWithAttributes(semconv.SchemaURL, attrs...), nil
}

// createSampler samples everything at rate 1 and respects the parent decision otherwise
func createSampler(rate float64) sdktrace.Sampler {
	if rate >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}

// createPropagator creates a composite propagator for trace context
func createPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}
