package sim

import (
	"context"
	"sync"

	"river-raid/server/internal/telemetry"
	"river-raid/server/internal/world"
	"river-raid/server/logging"
	"river-raid/server/logging/simulation"
)

// Engine owns the world aggregate. Every read and write goes through one
// mutex; nothing blocking happens while it is held.
type Engine struct {
	mu    sync.Mutex
	world *world.World
	deps  Deps
}

// NewEngine builds a fresh world.
func NewEngine(cfg world.Config, deps Deps) *Engine {
	deps = deps.normalized()
	return &Engine{
		world: world.New(cfg, deps.RNG),
		deps:  deps,
	}
}

// Deps returns the injected dependencies.
func (e *Engine) Deps() Deps {
	if e == nil {
		return Deps{}
	}
	return e.deps
}

// SetPendingInput replaces the input applied by subsequent steps.
func (e *Engine) SetPendingInput(in world.Input) {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.world.SetPendingInput(in)
	e.mu.Unlock()
}

// Step advances the world once and reports what changed. Events are
// published after the lock is released.
func (e *Engine) Step(ctx context.Context) world.StepResult {
	if e == nil {
		return world.StepResult{}
	}
	e.mu.Lock()
	res := e.world.Step()
	checkpoint := e.world.Checkpoint()
	e.mu.Unlock()

	e.deps.Metrics.Add(telemetry.MetricTicks, 1)
	publishStep(ctx, e.deps.Publisher, res, checkpoint)
	return res
}

// TrySpawn runs one director attempt.
func (e *Engine) TrySpawn(ctx context.Context, rule world.SpawnRule) (world.Enemy, bool) {
	if e == nil {
		return world.Enemy{}, false
	}
	e.mu.Lock()
	enemy, ok := e.world.TrySpawn(rule)
	tick := e.world.Tick()
	e.mu.Unlock()
	if !ok {
		return enemy, false
	}

	e.deps.Metrics.Add(telemetry.MetricSpawnsPrefix+rule.Kind.String(), 1)
	simulation.EnemySpawned(ctx, e.deps.Publisher, tick,
		logging.EntityRef{Kind: entityKind(rule.Kind)},
		simulation.EnemySpawnedPayload{X: enemy.X, Y: enemy.Y},
		nil,
	)
	return enemy, true
}

// Snapshot copies the world state.
func (e *Engine) Snapshot() world.Snapshot {
	if e == nil {
		return world.Snapshot{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.Snapshot()
}

// Phase reports the current lifecycle phase.
func (e *Engine) Phase() world.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.Phase()
}

// Tick reports the number of steps taken since start.
func (e *Engine) Tick() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.world.Tick()
}
