// Package messaging delivers HR domain events to an event sink.
package messaging

import (
	"context"

	"go.uber.org/zap"

	"logpulse/application/ports"
	"logpulse/domain/events"
)

// LogPublisher writes domain events to the logger. It is the sink used when
// no event bus is configured.
type LogPublisher struct {
	logger *zap.Logger
}

var _ ports.EventPublisher = (*LogPublisher)(nil)

// NewLogPublisher creates a publisher that logs at debug level.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event and never fails.
func (p *LogPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	fields := []zap.Field{
		zap.Any("ctx", ctx),
		zap.String("eventId", event.GetEventID()),
		zap.String("eventType", event.GetEventType()),
		zap.String("aggregateID", event.GetAggregateID()),
		zap.Time("timestamp", event.GetTimestamp()),
	}
	if hrEvent, ok := event.(*events.HREvent); ok {
		fields = append(fields, zap.Any("detail", hrEvent.Detail))
	}
	p.logger.Debug("Domain event", fields...)
	return nil
}
