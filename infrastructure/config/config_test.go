package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "logpulse", cfg.ServiceName)
	assert.Equal(t, ":8000", cfg.ServerAddress)
	assert.True(t, cfg.Simulator.Enabled)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Simulator.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Simulator.MinWait)
	assert.Equal(t, 2*time.Second, cfg.Simulator.MaxWait)
	assert.Equal(t, 5*time.Second, cfg.Simulator.RequestTimeout)
	assert.Equal(t, ProtocolGRPC, cfg.Telemetry.Protocol)
	assert.True(t, cfg.Telemetry.ExportOTLP())
	assert.False(t, cfg.Telemetry.ExportStdout())
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRate)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadConfig_LogFormat(t *testing.T) {
	t.Run("json outside development", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.False(t, cfg.IsDevelopment())
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("explicit format wins", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "json")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.LogFormat)
	})
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("SIM_ENABLED", "No")
	t.Setenv("SIM_BASE_URL", "http://api:8000/")
	t.Setenv("SIM_MIN_WAIT", "0.1")
	t.Setenv("SIM_MAX_WAIT", "0.25")
	t.Setenv("SIM_REQUEST_TIMEOUT", "2")
	t.Setenv("TELEMETRY_OUTPUTS", "BOTH")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf")
	t.Setenv("METRICS_EXPORT_INTERVAL", "500ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Simulator.Enabled)
	assert.Equal(t, "http://api:8000", cfg.Simulator.BaseURL)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulator.MinWait)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.MaxWait)
	assert.Equal(t, 2*time.Second, cfg.Simulator.RequestTimeout)
	assert.True(t, cfg.Telemetry.ExportOTLP())
	assert.True(t, cfg.Telemetry.ExportStdout())
	assert.Equal(t, 500*time.Millisecond, cfg.Telemetry.MetricsInterval)
}

func TestLoadConfig_LambdaDisablesSimulator(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "logpulse-api")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsLambda)
	assert.False(t, cfg.Simulator.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"max below min", map[string]string{"SIM_MIN_WAIT": "3", "SIM_MAX_WAIT": "1"}, "SIM_MAX_WAIT"},
		{"sample rate", map[string]string{"TRACE_SAMPLE_RATE": "1.5"}, "TRACE_SAMPLE_RATE"},
		{"sample rate not a number", map[string]string{"TRACE_SAMPLE_RATE": "NaN"}, "TRACE_SAMPLE_RATE"},
		{"protocol", map[string]string{"OTEL_EXPORTER_OTLP_PROTOCOL": "thrift"}, "OTEL_EXPORTER_OTLP_PROTOCOL"},
		{"outputs", map[string]string{"TELEMETRY_OUTPUTS": "kafka"}, "TELEMETRY_OUTPUTS"},
		{"negative min wait", map[string]string{"SIM_MIN_WAIT": "-1"}, "SIM_MIN_WAIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_NonFiniteWaitFallsBack(t *testing.T) {
	t.Setenv("SIM_MIN_WAIT", "NaN")
	t.Setenv("SIM_MAX_WAIT", "+Inf")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.Simulator.MinWait)
	assert.Equal(t, 2*time.Second, cfg.Simulator.MaxWait)
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "Yes", " yes "} {
		assert.True(t, IsTruthy(v), v)
	}
	for _, v := range []string{"0", "false", "no", "on", ""} {
		assert.False(t, IsTruthy(v), v)
	}
}

func TestTelemetryOutputs_Disabled(t *testing.T) {
	tc := TelemetryConfig{Disabled: true, Outputs: OutputBoth}
	assert.False(t, tc.ExportOTLP())
	assert.False(t, tc.ExportStdout())
}
