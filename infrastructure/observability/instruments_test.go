package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestInstruments_RecordRequest(t *testing.T) {
	in, reader := newTestInstruments(t)
	ctx := context.Background()

	in.RecordRequest(ctx, "GET", "/employees", 200, 12*time.Millisecond)
	in.RecordRequest(ctx, "GET", "/employees", 200, 8*time.Millisecond)
	in.RecordRequest(ctx, "POST", "/employees", 404, time.Millisecond)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), counterValue(t, rm, "app_requests_total",
		attribute.String("method", "GET"),
		attribute.String("path", "/employees"),
		attribute.String("status_code", "200"),
	))
	assert.Equal(t, int64(1), counterValue(t, rm, "app_requests_total",
		attribute.String("status_code", "404"),
	))
	assert.Equal(t, uint64(2), histogramCount(t, rm, "app_request_latency_ms",
		attribute.String("method", "GET"),
	))
}

func TestInstruments_RecordSimAction(t *testing.T) {
	in, reader := newTestInstruments(t)
	ctx := context.Background()

	in.RecordSimAction(ctx, "payroll", OutcomeOK, 150*time.Millisecond)
	in.RecordSimAction(ctx, "payroll", OutcomeRejected, 0)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "sim_actions_total",
		attribute.String("action", "payroll"),
		attribute.String("outcome", OutcomeOK),
	))
	assert.Equal(t, int64(2), counterValue(t, rm, "sim_actions_total", attribute.String("action", "payroll")))
	assert.Equal(t, uint64(2), histogramCount(t, rm, "sim_action_latency_ms"))
}

func TestInstruments_BusinessCounters(t *testing.T) {
	in, reader := newTestInstruments(t)
	ctx := context.Background()

	in.PayrollRuns.Add(ctx, 1)
	in.Promotions.Add(ctx, 3)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "payroll_runs_total"))
	assert.Equal(t, int64(3), counterValue(t, rm, "promotions_total"))
	assert.Equal(t, int64(0), counterValue(t, rm, "employee_created_total"))
}
