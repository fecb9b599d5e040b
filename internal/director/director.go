// Package director runs the periodic enemy spawners.
package director

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"river-raid/server/internal/sim"
	"river-raid/server/internal/world"
)

// Config holds one rule per spawned kind and the attempt period.
type Config struct {
	Period time.Duration
	Rules  []world.SpawnRule
}

// DefaultConfig mirrors the arcade spawn tables.
func DefaultConfig() Config {
	return Config{
		Period: 16 * time.Millisecond,
		Rules: []world.SpawnRule{
			{Kind: world.KindHelicopter, Limit: 2, Chance: 0.01},
			{Kind: world.KindTanker, Limit: 2, Chance: 0.01},
			{Kind: world.KindJet, Limit: 1, Chance: 0.005},
		},
	}
}

// Spawner is the part of the engine the director needs.
type Spawner interface {
	TrySpawn(ctx context.Context, rule world.SpawnRule) (world.Enemy, bool)
}

// Director owns one independent task per rule.
type Director struct {
	spawner Spawner
	config  Config
}

func New(spawner Spawner, cfg Config) *Director {
	if cfg.Period <= 0 {
		cfg.Period = DefaultConfig().Period
	}
	return &Director{spawner: spawner, config: cfg}
}

// attempt rolls rule once and reports whether an enemy was spawned.
func (d *Director) attempt(ctx context.Context, rule world.SpawnRule) bool {
	_, ok := d.spawner.TrySpawn(ctx, rule)
	return ok
}

// Run starts the spawners and blocks until ctx is cancelled.
func (d *Director) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, rule := range d.config.Rules {
		rule := rule
		g.Go(func() error {
			return sim.Every(ctx, d.config.Period, func(ctx context.Context) {
				d.attempt(ctx, rule)
			})
		})
	}
	return g.Wait()
}
