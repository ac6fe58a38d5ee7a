package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	_ "logpulse/docs/swagger" // registers the OpenAPI document
	"logpulse/infrastructure/observability"
	"logpulse/interfaces/http/rest/handlers"
	"logpulse/interfaces/http/rest/middleware"
	"logpulse/pkg/api"
)

// RouterConfig holds the router's feature switches
type RouterConfig struct {
	ServiceName string
	EnableCORS  bool
	// MetricsHandler serves /metrics; nil leaves the route unmounted
	MetricsHandler http.Handler
}

// Router creates and configures the HTTP router
type Router struct {
	service     handlers.HRService
	instruments *observability.Instruments
	tracer      trace.Tracer
	config      RouterConfig
	logger      *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	service handlers.HRService,
	instruments *observability.Instruments,
	tracer trace.Tracer,
	config RouterConfig,
	logger *zap.Logger,
) *Router {
	return &Router{
		service:     service,
		instruments: instruments,
		tracer:      tracer,
		config:      config,
		logger:      logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestIDHeader)
	router.Use(chimiddleware.RealIP)
	router.Use(observability.TracingMiddleware(rt.tracer))
	router.Use(observability.MetricsMiddleware(rt.instruments))
	router.Use(middleware.Logger(rt.logger.Named("http")))
	router.Use(chimiddleware.Recoverer)

	if rt.config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "traceparent", "tracestate", "baggage"},
			ExposedHeaders: []string{"X-Request-ID", "X-Trace-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/", rt.root)
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	if rt.config.MetricsHandler != nil {
		router.Method(http.MethodGet, "/metrics", rt.config.MetricsHandler)
	}
	router.Get("/openapi.json", api.SwaggerHandler())
	router.Get("/docs", api.SwaggerUIHandler("/openapi.json"))

	hrHandler := handlers.NewHRHandler(rt.service, rt.logger)

	router.Route("/departments", func(r chi.Router) {
		r.Post("/", hrHandler.CreateDepartment)
		r.Get("/", hrHandler.ListDepartments)
	})

	router.Route("/employees", func(r chi.Router) {
		r.Post("/", hrHandler.CreateEmployee)
		r.Get("/", hrHandler.ListEmployees)
		r.Get("/{employeeID}", hrHandler.GetEmployee)
		r.Post("/{employeeID}/attendance", hrHandler.CheckIn)
		r.Post("/{employeeID}/transfer", hrHandler.TransferEmployee)
		r.Post("/{employeeID}/promotion", hrHandler.PromoteEmployee)
	})

	router.Post("/payroll/run", hrHandler.RunPayroll)

	router.Route("/leave/requests", func(r chi.Router) {
		r.Post("/", hrHandler.RequestLeave)
		r.Post("/{leaveID}/decision", hrHandler.DecideLeave)
	})

	router.Route("/performance/reviews", func(r chi.Router) {
		r.Post("/", hrHandler.CreateReview)
		r.Post("/{reviewID}/decision", hrHandler.DecideReview)
	})

	return router
}

// root is the liveness probe used by the simulator and load balancers
func (rt *Router) root(w http.ResponseWriter, req *http.Request) {
	_ = api.Success(w, http.StatusOK, api.HealthResponse{Status: "ok", Service: rt.config.ServiceName})
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	_ = api.Success(w, http.StatusOK, api.StatusResponse{Status: "healthy"})
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	// The in-memory store has no dependencies to probe
	_ = api.Success(w, http.StatusOK, api.StatusResponse{Status: "ready"})
}
