package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	lognoop "go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func installTestPropagator() func() {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(createPropagator())
	return func() { otel.SetTextMapPropagator(prev) }
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		logger, err := NewLogger(LoggerConfig{ServiceName: "logpulse", Level: "debug", Format: "json"}, lognoop.NewLoggerProvider())
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("level is honoured", func(t *testing.T) {
		logger, err := NewLogger(LoggerConfig{ServiceName: "logpulse", Level: "WARN", Format: "console"}, lognoop.NewLoggerProvider())
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := NewLogger(LoggerConfig{Level: "loud"}, lognoop.NewLoggerProvider())
		assert.Error(t, err)
		_, err = NewLogger(LoggerConfig{Level: "info", Format: "xml"}, lognoop.NewLoggerProvider())
		assert.Error(t, err)
	})
}

func TestTraceFieldCore(t *testing.T) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(traceFieldCore{obsCore})

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	logger.Info("with span", zap.Any("ctx", ctx), zap.Int("employee_id", 1000))
	logger.Info("without span", zap.Any("ctx", context.Background()))

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
	assert.EqualValues(t, 1000, fields["employee_id"])
	assert.NotContains(t, fields, "ctx")

	assert.Empty(t, entries[1].ContextMap())
}

func TestPropagationRoundTrip(t *testing.T) {
	restore := installTestPropagator()
	defer restore()

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	carrier := InjectTraceContext(ctx)
	assert.Contains(t, carrier, "traceparent")
	assert.Equal(t, span.SpanContext().TraceID().String(), carrier["trace_id"])

	restored := otel.GetTextMapPropagator().Extract(context.Background(), propagation.MapCarrier(carrier))
	var hc propagation.MapCarrier = map[string]string{}
	otel.GetTextMapPropagator().Inject(restored, hc)
	assert.Equal(t, carrier["traceparent"], hc["traceparent"])
}
