package sim

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"river-raid/server/internal/world"
	"river-raid/server/logging"
	"river-raid/server/logging/lifecycle"
	"river-raid/server/logging/simulation"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []logging.Event
}

func (c *capturePublisher) Publish(_ context.Context, event logging.Event) {
	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()
}

func (c *capturePublisher) ofType(eventType logging.EventType) []logging.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []logging.Event
	for _, event := range c.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func newTestEngine(t *testing.T, lives int, pub logging.Publisher) *Engine {
	t.Helper()
	cfg := world.DefaultConfig()
	cfg.InitialLives = lives
	return NewEngine(cfg, Deps{Publisher: pub, RNG: rand.New(rand.NewSource(5))})
}

func TestEngineStepPublishesLifecycleEvents(t *testing.T) {
	pub := &capturePublisher{}
	engine := newTestEngine(t, 1, pub)
	engine.SetPendingInput(world.Input{DX: -1000})

	res := engine.Step(context.Background())
	if res.Death == nil || res.Death.Cause != world.CauseRiverbank {
		t.Fatalf("expected riverbank death, got %+v", res.Death)
	}
	if engine.Phase() != world.PhaseGameOver {
		t.Fatalf("expected game over, got %s", engine.Phase())
	}

	died := pub.ofType(lifecycle.EventPlayerDied)
	if len(died) != 1 {
		t.Fatalf("expected 1 death event, got %d", len(died))
	}
	payload, ok := died[0].Payload.(lifecycle.PlayerDiedPayload)
	if !ok || payload.Cause != string(world.CauseRiverbank) || payload.LivesRemaining != 0 {
		t.Fatalf("unexpected death payload %+v", died[0].Payload)
	}
	if died[0].Extra["run"] != res.RunID {
		t.Fatalf("expected run id in extra, got %v", died[0].Extra)
	}
	if len(pub.ofType(lifecycle.EventGameOver)) != 1 {
		t.Fatalf("expected game over event")
	}

	engine.SetPendingInput(world.Input{Restart: true})
	restart := engine.Step(context.Background())
	if !restart.Restarted {
		t.Fatalf("expected restart")
	}
	restarted := pub.ofType(lifecycle.EventGameRestarted)
	if len(restarted) != 1 || restarted[0].Payload.(lifecycle.GameRestartedPayload).RunID != restart.RunID {
		t.Fatalf("unexpected restart events %+v", restarted)
	}
}

func TestEngineTrySpawnPublishesEvent(t *testing.T) {
	pub := &capturePublisher{}
	engine := newTestEngine(t, 3, pub)

	enemy, ok := engine.TrySpawn(context.Background(), world.SpawnRule{Kind: world.KindJet, Limit: 1, Chance: 1})
	if !ok || enemy.Kind != world.KindJet {
		t.Fatalf("expected jet spawn, got %+v %v", enemy, ok)
	}
	if _, ok := engine.TrySpawn(context.Background(), world.SpawnRule{Kind: world.KindJet, Limit: 1, Chance: 1}); ok {
		t.Fatalf("expected cap to reject second jet")
	}
	events := pub.ofType(simulation.EventEnemySpawned)
	if len(events) != 1 || events[0].Actor.Kind != logging.EntityKindJet {
		t.Fatalf("unexpected spawn events %+v", events)
	}
	if len(engine.Snapshot().Jets) != 1 {
		t.Fatalf("expected jet in snapshot")
	}
}

func TestEngineConcurrentAccess(t *testing.T) {
	engine := newTestEngine(t, 3, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			engine.SetPendingInput(world.Input{DX: float64(i%3 - 1), Restart: true})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			engine.TrySpawn(ctx, world.SpawnRule{Kind: world.KindHelicopter, Limit: 2, Chance: 0.5})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			snap := engine.Snapshot()
			if len(snap.FuelDepots) != 2 {
				t.Errorf("expected two depots, got %d", len(snap.FuelDepots))
				return
			}
		}
	}()
	for i := 0; i < 500; i++ {
		engine.Step(ctx)
	}
	wg.Wait()

	if engine.Tick() != 500 {
		t.Fatalf("expected 500 ticks, got %d", engine.Tick())
	}
}

func TestLoopReportsBudgetOverruns(t *testing.T) {
	pub := &capturePublisher{}
	var mu sync.Mutex
	now := time.Unix(0, 0)
	clock := logging.ClockFunc(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(100 * time.Millisecond)
		return now
	})
	cfg := world.DefaultConfig()
	engine := NewEngine(cfg, Deps{Publisher: pub, Clock: clock, RNG: rand.New(rand.NewSource(1))})

	var seen []LoopStepResult
	loop := NewLoop(engine, LoopConfig{TickRate: 60}, LoopHooks{AfterStep: func(res LoopStepResult) {
		seen = append(seen, res)
	}})
	for i := 0; i < 4; i++ {
		loop.Advance(context.Background())
	}

	if len(seen) != 4 || seen[3].Tick != 4 {
		t.Fatalf("expected 4 hook calls, got %d", len(seen))
	}
	if seen[0].Duration != 100*time.Millisecond {
		t.Fatalf("expected measured duration 100ms, got %v", seen[0].Duration)
	}
	overruns := pub.ofType(simulation.EventTickBudgetOverrun)
	if len(overruns) != 3 {
		t.Fatalf("expected overruns reported for streaks 1, 2 and 4, got %d", len(overruns))
	}
	if streak := overruns[2].Payload.(simulation.TickBudgetOverrunPayload).Streak; streak != 4 {
		t.Fatalf("expected last reported streak 4, got %d", streak)
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	engine := newTestEngine(t, 3, nil)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := make(chan struct{}, 16)
	loop := NewLoop(engine, LoopConfig{TickRate: 200}, LoopHooks{AfterStep: func(LoopStepResult) {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}})

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for tick %d", i)
		}
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not stop after cancel")
	}
}

func TestEveryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Every(ctx, time.Millisecond, func(context.Context) {
			select {
			case calls <- struct{}{}:
			default:
			}
		})
	}()

	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected periodic call")
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Every did not return after cancel")
	}
}
