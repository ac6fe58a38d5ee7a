package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"logpulse/infrastructure/config"
	"logpulse/infrastructure/messaging"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:      "hr-api",
		ServiceVersion:   "test",
		Environment:      "test",
		LogLevel:         "info",
		LogFormat:        "json",
		EnablePrometheus: true,
		Simulator: config.SimulatorConfig{
			BaseURL:        "http://127.0.0.1:8000/",
			MinWait:        500 * time.Millisecond,
			MaxWait:        2 * time.Second,
			RequestTimeout: 5 * time.Second,
		},
		Telemetry: config.TelemetryConfig{
			Outputs:         config.OutputNone,
			Protocol:        config.ProtocolGRPC,
			SampleRate:      1,
			MetricsInterval: 15 * time.Second,
		},
	}
}

func TestInitializeContainer(t *testing.T) {
	ctx := context.Background()
	c, cleanup, err := InitializeContainer(ctx, testConfig())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, c.Logger)
	assert.NotNil(t, c.Service)
	assert.NotNil(t, c.Simulator)
	assert.False(t, c.Simulator.Running())
	assert.IsType(t, &messaging.LogPublisher{}, c.Events)

	w := httptest.NewRecorder()
	c.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "hr-api", body["service"])

	w = httptest.NewRecorder()
	c.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, c.Shutdown(ctx))
}

func TestInitializeContainer_TelemetryDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Telemetry.Disabled = true

	c, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()
	defer c.Shutdown(context.Background())

	w := httptest.NewRecorder()
	c.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitializeContainer_InvalidLogLevel(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "loud"

	c, cleanup, err := InitializeContainer(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Nil(t, cleanup)

	// the SDK tracer provider installed during setup no longer records
	_, span := otel.GetTracerProvider().Tracer("test").Start(context.Background(), "after-failure")
	defer span.End()
	assert.False(t, span.IsRecording())
}

func TestProvideTelemetry_Cleanup(t *testing.T) {
	provider, cleanup, err := ProvideTelemetry(context.Background(), testConfig())
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), "before")
	assert.True(t, span.IsRecording())
	span.End()

	cleanup()
	_, span = provider.Tracer().Start(context.Background(), "after")
	assert.False(t, span.IsRecording())
	span.End()
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestSimulatorOptions(t *testing.T) {
	opts := SimulatorOptions(testConfig().Simulator)
	assert.Equal(t, "http://127.0.0.1:8000/", opts.BaseURL)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, 500*time.Millisecond, opts.MinWait)
}
