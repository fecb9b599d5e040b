package director

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"river-raid/server/internal/sim"
	"river-raid/server/internal/world"
)

type countingSpawner struct {
	mu    sync.Mutex
	calls map[world.Kind]int
}

func (c *countingSpawner) TrySpawn(_ context.Context, rule world.SpawnRule) (world.Enemy, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[world.Kind]int)
	}
	c.calls[rule.Kind]++
	return world.Enemy{Kind: rule.Kind}, true
}

func (c *countingSpawner) count(kind world.Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[kind]
}

func TestDirectorRunsEverySpawner(t *testing.T) {
	spawner := &countingSpawner{}
	cfg := DefaultConfig()
	cfg.Period = time.Millisecond
	d := New(spawner, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if spawner.count(world.KindHelicopter) > 2 && spawner.count(world.KindTanker) > 2 && spawner.count(world.KindJet) > 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	for _, kind := range world.EnemyKinds {
		if spawner.count(kind) <= 2 {
			t.Fatalf("expected repeated attempts for %s, got %d", kind, spawner.count(kind))
		}
	}
}

func TestDirectorRespectsCapsAgainstEngine(t *testing.T) {
	engine := sim.NewEngine(world.DefaultConfig(), sim.Deps{RNG: rand.New(rand.NewSource(11))})
	cfg := DefaultConfig()
	for i := range cfg.Rules {
		cfg.Rules[i].Chance = 1
	}
	d := New(engine, cfg)

	for i := 0; i < 10; i++ {
		for _, rule := range cfg.Rules {
			d.attempt(context.Background(), rule)
		}
	}
	snap := engine.Snapshot()
	if len(snap.Helicopters) != 2 || len(snap.Tankers) != 2 || len(snap.Jets) != 1 {
		t.Fatalf("expected populations at caps 2/2/1, got %d/%d/%d",
			len(snap.Helicopters), len(snap.Tankers), len(snap.Jets))
	}
}

func TestDirectorSpawnRate(t *testing.T) {
	engine := sim.NewEngine(world.DefaultConfig(), sim.Deps{RNG: rand.New(rand.NewSource(21))})
	rule := world.SpawnRule{Kind: world.KindJet, Limit: 1 << 20, Chance: 0.005}
	d := New(engine, Config{Rules: []world.SpawnRule{rule}})

	const attempts = 40000
	spawned := 0
	for i := 0; i < attempts; i++ {
		if d.attempt(context.Background(), rule) {
			spawned++
		}
	}
	rate := float64(spawned) / attempts
	if rate < 0.003 || rate > 0.007 {
		t.Fatalf("expected jet spawn rate near 0.005, got %v", rate)
	}
}
