package observability

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"logpulse/infrastructure/config"
)

// endpointHost strips any URL scheme and path; the OTLP exporters want host:port.
func endpointHost(endpoint string) string {
	host := endpoint
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	return host
}

func newSpanExporters(ctx context.Context, tc config.TelemetryConfig) ([]sdktrace.SpanExporter, error) {
	var exporters []sdktrace.SpanExporter

	if tc.ExportOTLP() {
		host := endpointHost(tc.Endpoint)
		var (
			exp sdktrace.SpanExporter
			err error
		)
		if tc.Protocol == config.ProtocolHTTP {
			opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
			if tc.Insecure {
				opts = append(opts, otlptracehttp.WithInsecure())
			}
			exp, err = otlptracehttp.New(ctx, opts...)
		} else {
			opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(host)}
			if tc.Insecure {
				opts = append(opts, otlptracegrpc.WithInsecure())
			}
			exp, err = otlptracegrpc.New(ctx, opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("otlp trace exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	if tc.ExportStdout() {
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	return exporters, nil
}

func newMetricExporters(ctx context.Context, tc config.TelemetryConfig) ([]sdkmetric.Exporter, error) {
	var exporters []sdkmetric.Exporter

	if tc.ExportOTLP() {
		host := endpointHost(tc.Endpoint)
		var (
			exp sdkmetric.Exporter
			err error
		)
		if tc.Protocol == config.ProtocolHTTP {
			opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
			if tc.Insecure {
				opts = append(opts, otlpmetrichttp.WithInsecure())
			}
			exp, err = otlpmetrichttp.New(ctx, opts...)
		} else {
			opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(host)}
			if tc.Insecure {
				opts = append(opts, otlpmetricgrpc.WithInsecure())
			}
			exp, err = otlpmetricgrpc.New(ctx, opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("otlp metric exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	if tc.ExportStdout() {
		exp, err := stdoutmetric.New(stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("stdout metric exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	return exporters, nil
}

func newLogExporters(ctx context.Context, tc config.TelemetryConfig) ([]sdklog.Exporter, error) {
	var exporters []sdklog.Exporter

	if tc.ExportOTLP() {
		host := endpointHost(tc.Endpoint)
		var (
			exp sdklog.Exporter
			err error
		)
		if tc.Protocol == config.ProtocolHTTP {
			opts := []otlploghttp.Option{otlploghttp.WithEndpoint(host)}
			if tc.Insecure {
				opts = append(opts, otlploghttp.WithInsecure())
			}
			exp, err = otlploghttp.New(ctx, opts...)
		} else {
			opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(host)}
			if tc.Insecure {
				opts = append(opts, otlploggrpc.WithInsecure())
			}
			exp, err = otlploggrpc.New(ctx, opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("otlp log exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	if tc.ExportStdout() {
		exp, err := stdoutlog.New()
		if err != nil {
			return nil, fmt.Errorf("stdout log exporter: %w", err)
		}
		exporters = append(exporters, exp)
	}

	return exporters, nil
}
