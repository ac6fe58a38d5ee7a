// Package observability wires the LogPulse telemetry pipeline.
//
// Setup builds the three OpenTelemetry signal providers from configuration:
//   - traces: a TracerProvider with a batch span processor per exporter
//   - metrics: a MeterProvider with a periodic reader per exporter plus an
//     optional Prometheus pull reader served on /metrics
//   - logs: a LoggerProvider fed by zap through the otelzap bridge
//
// Exporters are chosen by TELEMETRY_OUTPUTS (otlp, stdout, both, none) and
// OTEL_EXPORTER_OTLP_PROTOCOL (grpc or http/protobuf). With OTEL_SDK_DISABLED
// every provider is a noop and nothing leaves the process.
//
// HTTP handlers are instrumented with TracingMiddleware and MetricsMiddleware:
//
//	router.Use(observability.TracingMiddleware(tracer))
//	router.Use(observability.MetricsMiddleware(instruments))
//
// Spans follow the "METHOD /route/{pattern}" naming convention and metric
// path labels use the chi route pattern, never the raw URL.
package observability
