package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logpulse/infrastructure/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:      "logpulse-test",
		ServiceVersion:   "test",
		Environment:      "test",
		EnablePrometheus: true,
		Telemetry: config.TelemetryConfig{
			Outputs:         config.OutputNone,
			Protocol:        config.ProtocolGRPC,
			SampleRate:      1,
			MetricsInterval: 15e9,
		},
	}
}

func TestSetup_PrometheusScrape(t *testing.T) {
	ctx := context.Background()
	p, err := Setup(ctx, testConfig())
	require.NoError(t, err)
	defer p.Shutdown(ctx)

	in, err := NewInstruments(p.Meter())
	require.NoError(t, err)
	in.PayrollRuns.Add(ctx, 1)

	handler := p.MetricsHandler()
	require.NotNil(t, handler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(body), "payroll_runs_total")

	_, span := p.Tracer().Start(ctx, "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, p.ForceFlush(ctx))
}

func TestSetup_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Telemetry.Disabled = true

	p, err := Setup(context.Background(), cfg)
	require.NoError(t, err)

	assert.Nil(t, p.MetricsHandler())
	_, span := p.Tracer().Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, p.ForceFlush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestShutdown_Idempotent(t *testing.T) {
	ctx := context.Background()
	p, err := Setup(ctx, testConfig())
	require.NoError(t, err)

	assert.NoError(t, p.Shutdown(ctx))
	assert.NoError(t, p.Shutdown(ctx))
}

func TestCreateSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", createSampler(1).Description())
	assert.Contains(t, createSampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestEndpointHost(t *testing.T) {
	assert.Equal(t, "collector:4317", endpointHost("collector:4317"))
	assert.Equal(t, "collector:4318", endpointHost("http://collector:4318"))
	assert.Equal(t, "collector:4318", endpointHost("https://collector:4318/v1/traces"))
}
