package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// InjectTraceContext returns the W3C headers for ctx so async consumers of
// domain events can continue the trace.
func InjectTraceContext(ctx context.Context) map[string]string {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		carrier["trace_id"] = sc.TraceID().String()
		carrier["span_id"] = sc.SpanID().String()
	}
	return carrier
}
