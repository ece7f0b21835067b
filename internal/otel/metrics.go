package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "panewright"

// Metrics holds all OTEL metric instruments for panewright. All
// counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Topology mutations
	Splits metric.Int64Counter
	Closes metric.Int64Counter

	// Reconciler activity
	ReconcileAdded  metric.Int64Counter
	ReconcilePruned metric.Int64Counter

	// Equalize pipeline
	EqualizeRuns     metric.Int64Counter
	ResizeCommands   metric.Int64Counter
	LockedBoundaries metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Splits, err = meter.Int64Counter("topology.splits",
		metric.WithDescription("Total pane splits performed"))
	if err != nil {
		return nil, err
	}

	m.Closes, err = meter.Int64Counter("topology.closes",
		metric.WithDescription("Total pane closes performed"))
	if err != nil {
		return nil, err
	}

	m.ReconcileAdded, err = meter.Int64Counter("reconcile.panes_added",
		metric.WithDescription("Pane records created by reconciliation"))
	if err != nil {
		return nil, err
	}

	m.ReconcilePruned, err = meter.Int64Counter("reconcile.panes_pruned",
		metric.WithDescription("Stale pane records dropped by reconciliation"))
	if err != nil {
		return nil, err
	}

	m.EqualizeRuns, err = meter.Int64Counter("equalize.runs",
		metric.WithDescription("Total equalize pipeline runs"))
	if err != nil {
		return nil, err
	}

	m.ResizeCommands, err = meter.Int64Counter("equalize.resize_commands",
		metric.WithDescription("Resize commands issued during equalization"))
	if err != nil {
		return nil, err
	}

	m.LockedBoundaries, err = meter.Int64Counter("equalize.locked_boundaries",
		metric.WithDescription("Locked boundaries detected during equalization"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordSplit records one split, partitioned by direction.
func (m *Metrics) RecordSplit(ctx context.Context, dir string) {
	if m == nil {
		return
	}
	m.Splits.Add(ctx, 1, metric.WithAttributes(attribute.String("split.direction", dir)))
}

// RecordClose records one close.
func (m *Metrics) RecordClose(ctx context.Context) {
	if m == nil {
		return
	}
	m.Closes.Add(ctx, 1)
}

// RecordReconcile records reconciliation churn.
func (m *Metrics) RecordReconcile(ctx context.Context, added, pruned int) {
	if m == nil {
		return
	}
	if added > 0 {
		m.ReconcileAdded.Add(ctx, int64(added))
	}
	if pruned > 0 {
		m.ReconcilePruned.Add(ctx, int64(pruned))
	}
}

// RecordEqualize records one equalize run with its resize command
// count and how many locked boundaries the classifier found.
func (m *Metrics) RecordEqualize(ctx context.Context, resizes, locked int) {
	if m == nil {
		return
	}
	m.EqualizeRuns.Add(ctx, 1)
	if resizes > 0 {
		m.ResizeCommands.Add(ctx, int64(resizes))
	}
	if locked > 0 {
		m.LockedBoundaries.Add(ctx, int64(locked))
	}
}
