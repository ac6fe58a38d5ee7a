// Package simulator drives synthetic HR traffic against the API so the
// service always has something to trace, count and log.
package simulator

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"logpulse/infrastructure/config"
	"logpulse/infrastructure/observability"
)

// Options configures a Simulator.
type Options struct {
	BaseURL string
	MinWait time.Duration
	MaxWait time.Duration
	// Timeout bounds a single HTTP call.
	Timeout time.Duration
	// Seed makes the action sequence reproducible; zero seeds randomly.
	Seed int64
	// Weights maps action names to relative weights. Empty means uniform.
	Weights map[string]float64
	// Transport is wrapped with otelhttp; nil uses http.DefaultTransport.
	Transport http.RoundTripper
	Breaker   BreakerConfig
}

// Simulator runs one background loop of random HR actions.
type Simulator struct {
	opts        Options
	client      *client
	instruments *observability.Instruments
	tracer      trace.Tracer
	logger      *zap.Logger
	rng         *rand.Rand
	actions     map[string]actionFunc
	state       *state

	mu      sync.RWMutex
	minWait time.Duration
	maxWait time.Duration
	weights map[string]float64
	paused  bool

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a simulator. It does not start until Start is called.
func New(opts Options, logger *zap.Logger, instruments *observability.Instruments, tracer trace.Tracer) *Simulator {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.MaxWait < opts.MinWait {
		opts.MaxWait = opts.MinWait
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Breaker.Name == "" {
		opts.Breaker = DefaultBreakerConfig("simulator")
	}

	seed := uint64(opts.Seed)
	if opts.Seed == 0 {
		seed = rand.Uint64()
	}

	s := &Simulator{
		opts:        opts,
		client:      newClient(opts, logger),
		instruments: instruments,
		tracer:      tracer,
		logger:      logger.Named("sim"),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		state:       &state{},
		minWait:     opts.MinWait,
		maxWait:     opts.MaxWait,
		weights:     copyWeights(opts.Weights),
	}
	s.actions = s.actionTable()
	return s
}

// Start launches the simulation loop. Calling it again while running is a no-op.
func (s *Simulator) Start() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("simulator started",
		zap.String("baseURL", s.opts.BaseURL),
		zap.Duration("minWait", s.opts.MinWait),
		zap.Duration("maxWait", s.opts.MaxWait),
	)
	go s.run(ctx, s.done)
}

// Stop cancels the loop and waits for it to exit or for ctx to expire.
func (s *Simulator) Stop(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.cancel == nil {
		return nil
	}
	s.cancel()

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.cancel = nil
	s.done = nil
	s.logger.Info("simulator stopped")
	return nil
}

// Running reports whether the loop is active.
func (s *Simulator) Running() bool {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	return s.cancel != nil
}

// ApplyOverlay updates waits, weights and the paused flag of a running simulator.
// Settings absent from the overlay fall back to the values given to New.
func (s *Simulator) ApplyOverlay(overlay *config.SimulatorOverlay) {
	if overlay == nil {
		return
	}
	lo, hi := overlay.Waits(s.opts.MinWait, s.opts.MaxWait)
	if hi < lo {
		hi = lo
	}

	s.mu.Lock()
	s.minWait, s.maxWait = lo, hi
	s.paused = overlay.Paused
	if len(overlay.Actions) > 0 {
		s.weights = copyWeights(overlay.Actions)
	} else {
		s.weights = copyWeights(s.opts.Weights)
	}
	s.mu.Unlock()

	s.logger.Info("simulator overlay applied",
		zap.Duration("minWait", lo),
		zap.Duration("maxWait", hi),
		zap.Bool("paused", overlay.Paused),
		zap.Int("weightedActions", len(overlay.Actions)),
	)
}

func (s *Simulator) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if !s.isPaused() {
			action := s.chooseAction()
			if err := s.perform(ctx, action); err != nil && ctx.Err() == nil {
				s.logger.Warn("sim action failed",
					zap.String("action", action),
					zap.Error(err),
				)
			}
		}

		if !sleepContext(ctx, s.nextWait()) {
			return
		}
	}
}

// perform runs one action inside its own client span and records the outcome.
func (s *Simulator) perform(ctx context.Context, action string) error {
	fn, ok := s.actions[action]
	if !ok {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "simulator."+action,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("sim.action", action)),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	outcome := outcomeOf(err)

	span.SetAttributes(attribute.String("sim.outcome", outcome))
	if outcome == observability.OutcomeError || outcome == observability.OutcomeRejected {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.instruments.RecordSimAction(ctx, action, outcome, time.Since(start))

	if errors.Is(err, errSkipped) {
		return nil
	}
	return err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, errSkipped):
		return observability.OutcomeSkipped
	case isRejected(err):
		return observability.OutcomeRejected
	default:
		return observability.OutcomeError
	}
}

func (s *Simulator) isPaused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// chooseAction picks uniformly over all actions unless weights are set.
func (s *Simulator) chooseAction() string {
	s.mu.RLock()
	weights := s.weights
	s.mu.RUnlock()

	if len(weights) == 0 {
		return actionNames[s.rng.IntN(len(actionNames))]
	}

	total := 0.0
	for _, name := range actionNames {
		total += weights[name]
	}
	if total <= 0 {
		return actionNames[s.rng.IntN(len(actionNames))]
	}

	target := s.rng.Float64() * total
	for _, name := range actionNames {
		target -= weights[name]
		if target < 0 {
			return name
		}
	}
	return actionNames[len(actionNames)-1]
}

func (s *Simulator) nextWait() time.Duration {
	s.mu.RLock()
	lo, hi := s.minWait, s.maxWait
	s.mu.RUnlock()

	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.rng.Int64N(int64(hi-lo)+1))
}

// sleepContext returns false when ctx is cancelled before d elapses.
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func copyWeights(in map[string]float64) map[string]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
