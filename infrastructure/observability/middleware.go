package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// UnmatchedRoute is the path label for requests no route matched.
const UnmatchedRoute = "unmatched"

// routePattern reads the chi pattern; only complete after the router has run.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return UnmatchedRoute
}

// responseStatus treats an unwritten response as 200, as net/http does.
func responseStatus(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}

// TracingMiddleware starts a server span per request.
// Client errors are recorded as attributes; only 5xx responses mark the span as failed.
func TracingMiddleware(tracer trace.Tracer) func(http.Handler) http.Handler {
	propagator := otel.GetTextMapPropagator()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract trace context from incoming headers for distributed tracing
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(
				ctx,
				r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
					attribute.String("server.address", r.Host),
					attribute.String("user_agent.original", r.UserAgent()),
					attribute.String("client.address", r.RemoteAddr),
					attribute.String("http.request_id", middleware.GetReqID(r.Context())),
				),
			)
			defer span.End()

			// Add trace ID to response for debugging
			if spanCtx := span.SpanContext(); spanCtx.HasTraceID() {
				w.Header().Set("X-Trace-ID", spanCtx.TraceID().String())
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := responseStatus(ww)
				if rec := recover(); rec != nil {
					status = http.StatusInternalServerError
					finishSpan(span, r, status, ww.BytesWritten(), time.Since(start))
					panic(rec)
				}
				finishSpan(span, r, status, ww.BytesWritten(), time.Since(start))
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}

func finishSpan(span trace.Span, r *http.Request, status, size int, elapsed time.Duration) {
	route := routePattern(r)
	span.SetName(fmt.Sprintf("%s %s", r.Method, route))
	span.SetAttributes(
		attribute.String("http.route", route),
		attribute.Int("http.response.status_code", status),
		attribute.Int("http.response.body.size", size),
		attribute.Float64("http.duration_ms", durationMs(elapsed)),
	)

	switch {
	case status >= http.StatusInternalServerError:
		span.SetStatus(codes.Error, http.StatusText(status))
	case status >= http.StatusBadRequest:
		span.SetAttributes(attribute.String("error.type", fmt.Sprintf("%d", status)))
	default:
		span.SetStatus(codes.Ok, "")
	}

	// Add performance warning for slow requests
	if elapsed > 5*time.Second {
		span.AddEvent("slow_request_warning",
			trace.WithAttributes(attribute.Float64("duration_seconds", elapsed.Seconds())),
		)
	}
}

// MetricsMiddleware records app_requests_total and app_request_latency_ms.
// The path label is the matched route pattern, so ids never become label values.
func MetricsMiddleware(in *Instruments) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := responseStatus(ww)
				rec := recover()
				if rec != nil {
					status = http.StatusInternalServerError
				}
				in.RecordRequest(r.Context(), r.Method, routePattern(r), status, time.Since(start))
				if rec != nil {
					panic(rec)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
