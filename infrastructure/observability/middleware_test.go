package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newInstrumentedRouter(t *testing.T) (*chi.Mux, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	in, reader := newTestInstruments(t)

	r := chi.NewRouter()
	r.Use(TracingMiddleware(tp.Tracer("test")))
	r.Use(MetricsMiddleware(in))
	r.Use(chimw.Recoverer)

	r.Get("/employees/{employeeID}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "employeeID") == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":1000}`))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	return r, recorder, reader
}

func TestTracingMiddleware(t *testing.T) {
	router, recorder, _ := newInstrumentedRouter(t)

	t.Run("span named after route", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/1000", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))

		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		span := spans[len(spans)-1]
		assert.Equal(t, "GET /employees/{employeeID}", span.Name())
		assert.Equal(t, codes.Ok, span.Status().Code)
		assert.Contains(t, span.Attributes(), attribute.String("http.route", "/employees/{employeeID}"))
		assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", 200))
	})

	t.Run("client error is not a span error", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/404", nil))

		spans := recorder.Ended()
		span := spans[len(spans)-1]
		assert.NotEqual(t, codes.Error, span.Status().Code)
		assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", 404))
	})

	t.Run("panic marks span as error", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		spans := recorder.Ended()
		span := spans[len(spans)-1]
		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("continues incoming trace", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/employees/1000", nil)
		req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
		w := httptest.NewRecorder()

		restore := installTestPropagator()
		defer restore()
		r2, rec2, _ := newInstrumentedRouter(t)
		r2.ServeHTTP(w, req)

		spans := rec2.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
		assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent().SpanID().String())
	})
}

func TestMetricsMiddleware(t *testing.T) {
	router, _, reader := newInstrumentedRouter(t)

	for _, path := range []string{"/employees/1000", "/employees/1001", "/employees/404", "/nowhere", "/boom"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rm := collect(t, reader)
	assert.Equal(t, int64(2), counterValue(t, rm, "app_requests_total",
		attribute.String("path", "/employees/{employeeID}"),
		attribute.String("status_code", "200"),
	))
	assert.Equal(t, int64(1), counterValue(t, rm, "app_requests_total",
		attribute.String("path", "/employees/{employeeID}"),
		attribute.String("status_code", "404"),
	))
	assert.Equal(t, int64(1), counterValue(t, rm, "app_requests_total",
		attribute.String("path", UnmatchedRoute),
		attribute.String("status_code", "404"),
	))
	assert.Equal(t, int64(1), counterValue(t, rm, "app_requests_total",
		attribute.String("path", "/boom"),
		attribute.String("status_code", "500"),
	))
	assert.Equal(t, uint64(5), histogramCount(t, rm, "app_request_latency_ms"))
}
