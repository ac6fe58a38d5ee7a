package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Telemetry output selections.
const (
	OutputOTLP   = "otlp"
	OutputStdout = "stdout"
	OutputBoth   = "both"
	OutputNone   = "none"
)

// OTLP transport protocols.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http/protobuf"
)

// SimulatorConfig holds configuration for the background traffic simulator
type SimulatorConfig struct {
	Enabled        bool
	BaseURL        string
	MinWait        time.Duration
	MaxWait        time.Duration
	RequestTimeout time.Duration
	// Seed of 0 means a time-based seed
	Seed int64
	// ConfigFile is an optional YAML overlay that is hot reloaded
	ConfigFile string
}

// TelemetryConfig holds configuration for the OpenTelemetry pipeline
type TelemetryConfig struct {
	Disabled        bool
	Endpoint        string
	Protocol        string
	Insecure        bool
	Outputs         string
	SampleRate      float64
	MetricsInterval time.Duration
}

// ExportOTLP reports whether OTLP exporters should be installed.
func (t TelemetryConfig) ExportOTLP() bool {
	return !t.Disabled && (t.Outputs == OutputOTLP || t.Outputs == OutputBoth)
}

// ExportStdout reports whether stdout exporters should be installed.
func (t TelemetryConfig) ExportStdout() bool {
	return !t.Disabled && (t.Outputs == OutputStdout || t.Outputs == OutputBoth)
}

// Config holds all application configuration
type Config struct {
	// Service identity
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Server configuration
	ServerAddress string

	// Logging
	LogLevel  string
	LogFormat string

	// Feature flags
	EnableCORS       bool
	EnablePrometheus bool

	// AWS configuration
	AWSRegion    string
	EventBusName string

	// Lambda configuration
	IsLambda bool

	Simulator SimulatorConfig
	Telemetry TelemetryConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServiceName:    getEnv("SERVICE_NAME", "logpulse"),
		ServiceVersion: getEnv("SERVICE_VERSION", "0.2.0"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerAddress:  getEnv("SERVER_ADDRESS", ":8000"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),

		EnableCORS:       getEnvBool("ENABLE_CORS", true),
		EnablePrometheus: getEnvBool("ENABLE_PROMETHEUS", true),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		EventBusName: getEnv("EVENT_BUS_NAME", ""),

		IsLambda: getEnv("AWS_LAMBDA_FUNCTION_NAME", "") != "",

		Simulator: SimulatorConfig{
			Enabled:        getEnvBool("SIM_ENABLED", true),
			BaseURL:        strings.TrimRight(getEnv("SIM_BASE_URL", "http://127.0.0.1:8000"), "/"),
			MinWait:        getEnvSeconds("SIM_MIN_WAIT", 500*time.Millisecond),
			MaxWait:        getEnvSeconds("SIM_MAX_WAIT", 2*time.Second),
			RequestTimeout: getEnvDuration("SIM_REQUEST_TIMEOUT", 5*time.Second),
			Seed:           int64(getEnvInt("SIM_SEED", 0)),
			ConfigFile:     getEnv("SIM_CONFIG_FILE", ""),
		},

		Telemetry: TelemetryConfig{
			Disabled:        getEnvBool("OTEL_SDK_DISABLED", false),
			Endpoint:        getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Protocol:        getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", ProtocolGRPC),
			Insecure:        getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			Outputs:         strings.ToLower(getEnv("TELEMETRY_OUTPUTS", OutputOTLP)),
			SampleRate:      getEnvFloat("TRACE_SAMPLE_RATE", 1.0),
			MetricsInterval: getEnvDuration("METRICS_EXPORT_INTERVAL", 15*time.Second),
		},
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDevelopment() {
			cfg.LogFormat = "console"
		}
	}

	// The simulator never runs inside Lambda
	if cfg.IsLambda {
		cfg.Simulator.Enabled = false
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("SERVICE_NAME is required")
	}

	if c.Simulator.MinWait < 0 {
		return fmt.Errorf("SIM_MIN_WAIT cannot be negative")
	}
	if c.Simulator.MaxWait < c.Simulator.MinWait {
		return fmt.Errorf("SIM_MAX_WAIT (%s) must be >= SIM_MIN_WAIT (%s)", c.Simulator.MaxWait, c.Simulator.MinWait)
	}
	if c.Simulator.RequestTimeout <= 0 {
		return fmt.Errorf("SIM_REQUEST_TIMEOUT must be positive")
	}
	if c.Simulator.Enabled && c.Simulator.BaseURL == "" {
		return fmt.Errorf("SIM_BASE_URL is required when the simulator is enabled")
	}

	if math.IsNaN(c.Telemetry.SampleRate) || c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("TRACE_SAMPLE_RATE must be between 0 and 1, got %v", c.Telemetry.SampleRate)
	}
	switch c.Telemetry.Protocol {
	case ProtocolGRPC, ProtocolHTTP:
	default:
		return fmt.Errorf("unsupported OTEL_EXPORTER_OTLP_PROTOCOL %q", c.Telemetry.Protocol)
	}
	switch c.Telemetry.Outputs {
	case OutputOTLP, OutputStdout, OutputBoth, OutputNone:
	default:
		return fmt.Errorf("unsupported TELEMETRY_OUTPUTS %q", c.Telemetry.Outputs)
	}
	if c.Telemetry.MetricsInterval <= 0 {
		return fmt.Errorf("METRICS_EXPORT_INTERVAL must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return IsTruthy(value)
}

// IsTruthy accepts 1, true and yes in any case.
func IsTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

// getEnvSeconds reads a float number of seconds
func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, ok := parseSeconds(value); ok {
			return secs
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("5s") or plain seconds ("5")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, ok := parseSeconds(value); ok {
		return secs
	}
	return defaultValue
}

// parseSeconds rejects NaN and infinities, which have no Duration value.
func parseSeconds(value string) (time.Duration, bool) {
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, false
	}
	return time.Duration(secs * float64(time.Second)), true
}
