package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tx"

// Metrics holds all OTEL metric instruments for tx.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Invocations counts command runs, partitioned by command name and outcome.
	Invocations metric.Int64Counter

	// Compiles counts layout-to-script compilations.
	Compiles metric.Int64Counter

	// Saves counts workspace persist operations.
	Saves metric.Int64Counter

	// Loads counts stored-script executions.
	Loads metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Invocations, err = meter.Int64Counter("tx.invocations",
		metric.WithDescription("Number of tx command invocations"))
	if err != nil {
		return nil, err
	}

	m.Compiles, err = meter.Int64Counter("tx.compiles",
		metric.WithDescription("Number of layout-to-script compilations"))
	if err != nil {
		return nil, err
	}

	m.Saves, err = meter.Int64Counter("tx.saves",
		metric.WithDescription("Number of workspace save operations"))
	if err != nil {
		return nil, err
	}

	m.Loads, err = meter.Int64Counter("tx.loads",
		metric.WithDescription("Number of workspace load operations"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordInvocation increments the invocation counter for a command.
func (m *Metrics) RecordInvocation(ctx context.Context, command string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Invocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	))
}
