package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Simulator action outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
	OutcomeSkipped  = "skipped"
)

var latencyBucketsMs = []float64{5, 10, 25, 50, 100, 200, 300, 500, 1000, 2500, 5000}

// Instruments holds every metric instrument the service records.
type Instruments struct {
	// HTTP server
	RequestsTotal  metric.Int64Counter
	RequestLatency metric.Float64Histogram

	// Business
	EmployeesCreated    metric.Int64Counter
	AttendanceCheckins  metric.Int64Counter
	PayrollRuns         metric.Int64Counter
	LeaveRequests       metric.Int64Counter
	LeaveDecisions      metric.Int64Counter
	PerformanceReviews  metric.Int64Counter
	ReviewDecisions     metric.Int64Counter
	DepartmentTransfers metric.Int64Counter
	Promotions          metric.Int64Counter

	// Simulator
	SimActions metric.Int64Counter
	SimLatency metric.Float64Histogram
}

// NewInstruments creates the instruments on meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	var (
		in  Instruments
		err error
	)

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&in.RequestsTotal, "app_requests_total", "Total HTTP requests"},
		{&in.EmployeesCreated, "employee_created_total", "Employees created"},
		{&in.AttendanceCheckins, "attendance_checkins_total", "Attendance check-ins"},
		{&in.PayrollRuns, "payroll_runs_total", "Payroll runs"},
		{&in.LeaveRequests, "leave_requests_total", "Leave requests submitted"},
		{&in.LeaveDecisions, "leave_decisions_total", "Leave requests decided"},
		{&in.PerformanceReviews, "performance_reviews_total", "Performance reviews submitted"},
		{&in.ReviewDecisions, "review_decisions_total", "Performance reviews finalized"},
		{&in.DepartmentTransfers, "department_transfers_total", "Employees transferred between departments"},
		{&in.Promotions, "promotions_total", "Employee promotions"},
		{&in.SimActions, "sim_actions_total", "Simulator actions by outcome"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, fmt.Errorf("counter %s: %w", c.name, err)
		}
	}

	if in.RequestLatency, err = meter.Float64Histogram("app_request_latency_ms",
		metric.WithDescription("HTTP request latency in milliseconds"),
		metric.WithExplicitBucketBoundaries(latencyBucketsMs...),
	); err != nil {
		return nil, fmt.Errorf("histogram app_request_latency_ms: %w", err)
	}

	if in.SimLatency, err = meter.Float64Histogram("sim_action_latency_ms",
		metric.WithDescription("Simulator action latency in milliseconds"),
		metric.WithExplicitBucketBoundaries(latencyBucketsMs...),
	); err != nil {
		return nil, fmt.Errorf("histogram sim_action_latency_ms: %w", err)
	}

	return &in, nil
}

// RecordRequest counts one HTTP request and its latency.
func (in *Instruments) RecordRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	in.RequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.String("status_code", strconv.Itoa(status)),
	))
	in.RequestLatency.Record(ctx, durationMs(elapsed), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
	))
}

// RecordSimAction counts one simulator action and its latency.
func (in *Instruments) RecordSimAction(ctx context.Context, action, outcome string, elapsed time.Duration) {
	in.SimActions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
	in.SimLatency.Record(ctx, durationMs(elapsed), metric.WithAttributes(
		attribute.String("action", action),
	))
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
