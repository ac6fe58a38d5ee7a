package observability

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig selects the local zap encoding and level.
type LoggerConfig struct {
	ServiceName string
	Level       string
	// Format is "json" or "console"
	Format string
}

// NewLogger builds a zap logger whose records are written locally and also
// forwarded to the OpenTelemetry log pipeline.
//
// Pass the request context as a field to correlate a record with its span:
//
//	logger.Info("employee created", zap.Any("ctx", ctx))
//
// The local encoder renders that field as trace_id and span_id.
func NewLogger(cfg LoggerConfig, lp otellog.LoggerProvider) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	case "json", "":
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "ts"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	otelCore := levelCore{
		Core:  otelzap.NewCore(cfg.ServiceName, otelzap.WithLoggerProvider(lp)),
		level: level,
	}

	return zcfg.Build(zap.WrapCore(func(local zapcore.Core) zapcore.Core {
		return zapcore.NewTee(traceFieldCore{local}, otelCore)
	}))
}

// levelCore applies the configured minimum level to the otel bridge.
type levelCore struct {
	zapcore.Core
	level zapcore.LevelEnabler
}

func (c levelCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

func (c levelCore) With(fields []zapcore.Field) zapcore.Core {
	return levelCore{Core: c.Core.With(fields), level: c.level}
}

func (c levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// traceFieldCore replaces context.Context fields with trace_id and span_id.
type traceFieldCore struct {
	zapcore.Core
}

func (c traceFieldCore) With(fields []zapcore.Field) zapcore.Core {
	return traceFieldCore{c.Core.With(replaceContextFields(fields))}
}

func (c traceFieldCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c traceFieldCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, replaceContextFields(fields))
}

func replaceContextFields(fields []zapcore.Field) []zapcore.Field {
	out := fields[:0:0]
	for _, f := range fields {
		ctx, ok := f.Interface.(context.Context)
		if !ok {
			out = append(out, f)
			continue
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			out = append(out,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	return out
}
