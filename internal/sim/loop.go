package sim

import (
	"context"
	"time"

	"river-raid/server/internal/telemetry"
	"river-raid/server/internal/world"
	"river-raid/server/logging/simulation"
)

// LoopConfig tunes the fixed-rate tick loop.
type LoopConfig struct {
	TickRate int
}

// LoopHooks are optional callbacks run after every step, outside the world
// lock.
type LoopHooks struct {
	AfterStep func(LoopStepResult)
}

// LoopStepResult wraps a step with its timing.
type LoopStepResult struct {
	world.StepResult
	Duration time.Duration
	Budget   time.Duration
}

// Loop drives Engine.Step on a ticker.
type Loop struct {
	engine *Engine
	config LoopConfig
	hooks  LoopHooks

	overrunStreak uint64
}

// NewLoop wraps engine with a ticker loop.
func NewLoop(engine *Engine, cfg LoopConfig, hooks LoopHooks) *Loop {
	if engine == nil {
		return nil
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = world.DefaultTickHz
	}
	return &Loop{engine: engine, config: cfg, hooks: hooks}
}

func (l *Loop) budget() time.Duration {
	return time.Second / time.Duration(l.config.TickRate)
}

// Advance executes a single step and records its timing.
func (l *Loop) Advance(ctx context.Context) LoopStepResult {
	deps := l.engine.Deps()
	budget := l.budget()

	start := deps.Clock.Now()
	res := l.engine.Step(ctx)
	duration := deps.Clock.Now().Sub(start)

	deps.Metrics.Store(telemetry.MetricTickDurationMicro, uint64(max(duration, 0)/time.Microsecond))
	if duration > budget {
		l.overrunStreak++
		deps.Metrics.Add(telemetry.MetricTickOverruns, 1)
		// Report the first overrun of a streak and then every power of two.
		if l.overrunStreak&(l.overrunStreak-1) == 0 {
			simulation.TickBudgetOverrun(ctx, deps.Publisher, res.Tick, simulation.TickBudgetOverrunPayload{
				DurationMillis: duration.Milliseconds(),
				BudgetMillis:   budget.Milliseconds(),
				Ratio:          float64(duration) / float64(budget),
				Streak:         l.overrunStreak,
			}, nil)
		}
	} else {
		l.overrunStreak = 0
	}

	result := LoopStepResult{StepResult: res, Duration: duration, Budget: budget}
	if l.hooks.AfterStep != nil {
		l.hooks.AfterStep(result)
	}
	return result
}

// Run ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if l == nil {
		return nil
	}
	ticker := time.NewTicker(l.budget())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Advance(ctx)
		}
	}
}
