// Package replication publishes world snapshots to viewers.
package replication

import (
	"context"
	"time"

	"river-raid/server/internal/channel"
	"river-raid/server/internal/sim"
	"river-raid/server/internal/telemetry"
	"river-raid/server/internal/world"
	"river-raid/server/logging"
	"river-raid/server/logging/network"
)

const (
	DefaultPeriod      = 33 * time.Millisecond
	defaultLogInterval = 5 * time.Second
)

// Source is the snapshot side of the engine.
type Source interface {
	Snapshot() world.Snapshot
}

// HighScores reports the best finished score, if any.
type HighScores interface {
	Best() (int, bool)
}

type Config struct {
	Period time.Duration
	// FailureLogInterval bounds how often publish failures reach the logs.
	FailureLogInterval time.Duration
}

type Deps struct {
	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Publisher logging.Publisher
	Clock     logging.Clock
	Scores    HighScores
}

type Task struct {
	source Source
	sink   channel.SnapshotSink
	config Config
	deps   Deps

	failures   uint64
	nextLogAt  time.Time
	suppressed uint64
}

func New(source Source, sink channel.SnapshotSink, cfg Config, deps Deps) *Task {
	if cfg.Period <= 0 {
		cfg.Period = DefaultPeriod
	}
	if cfg.FailureLogInterval <= 0 {
		cfg.FailureLogInterval = defaultLogInterval
	}
	if deps.Logger == nil {
		deps.Logger = telemetry.Discard()
	}
	if deps.Metrics == nil {
		deps.Metrics = telemetry.DiscardMetrics()
	}
	if deps.Publisher == nil {
		deps.Publisher = logging.NopPublisher()
	}
	if deps.Clock == nil {
		deps.Clock = logging.SystemClock{}
	}
	return &Task{source: source, sink: sink, config: cfg, deps: deps}
}

// PublishOnce copies the world, renders it outside the lock and hands it to
// the sink. Failures are counted and logged at a bounded rate.
func (t *Task) PublishOnce(ctx context.Context) error {
	snap := t.source.Snapshot()
	now := t.deps.Clock.Now()
	state := protoState(snap, now, t.deps.Scores)

	err := t.sink.Publish(ctx, state)
	if err == nil {
		t.failures = 0
		t.deps.Metrics.Add(telemetry.MetricSnapshotsWritten, 1)
		return nil
	}

	t.failures++
	t.deps.Metrics.Add(telemetry.MetricPublishFailures, 1)
	if now.Before(t.nextLogAt) {
		t.suppressed++
		return err
	}
	t.nextLogAt = now.Add(t.config.FailureLogInterval)
	t.deps.Logger.Printf("[replication] publish failed (consecutive=%d suppressed=%d): %v", t.failures, t.suppressed, err)
	network.PublishFailed(ctx, t.deps.Publisher, snap.Tick, network.PublishFailedPayload{
		Error:       err.Error(),
		Consecutive: t.failures,
	}, map[string]any{"run": snap.RunID})
	t.suppressed = 0
	return err
}

// Run publishes until ctx is cancelled. Publish errors never stop the task.
func (t *Task) Run(ctx context.Context) error {
	return sim.Every(ctx, t.config.Period, func(ctx context.Context) {
		_ = t.PublishOnce(ctx)
	})
}
