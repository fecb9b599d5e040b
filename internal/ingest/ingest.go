// Package ingest polls the input channel and hands the latest document to
// the engine.
package ingest

import (
	"context"
	"time"

	"river-raid/server/internal/channel"
	"river-raid/server/internal/sim"
	"river-raid/server/internal/telemetry"
	"river-raid/server/internal/world"
)

const DefaultPeriod = 16 * time.Millisecond

// Target receives accepted input.
type Target interface {
	SetPendingInput(in world.Input)
}

type Task struct {
	source  channel.InputSource
	target  Target
	period  time.Duration
	metrics telemetry.Metrics
}

func New(source channel.InputSource, target Target, period time.Duration, metrics telemetry.Metrics) *Task {
	if period <= 0 {
		period = DefaultPeriod
	}
	if metrics == nil {
		metrics = telemetry.DiscardMetrics()
	}
	return &Task{source: source, target: target, period: period, metrics: metrics}
}

// Poll takes one input from the source. Without a new document the
// engine keeps its previous pending input.
func (t *Task) Poll(ctx context.Context) bool {
	t.metrics.Add(telemetry.MetricInputPolls, 1)
	in, ok := t.source.TryTakeLatest(ctx)
	if !ok {
		return false
	}
	t.target.SetPendingInput(in.World())
	t.metrics.Add(telemetry.MetricInputAccepted, 1)
	return true
}

// Run polls until ctx is cancelled.
func (t *Task) Run(ctx context.Context) error {
	return sim.Every(ctx, t.period, func(ctx context.Context) {
		t.Poll(ctx)
	})
}
