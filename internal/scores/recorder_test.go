package scores

import (
	"context"
	"testing"
	"time"
)

type gatedStore struct {
	*memoryStore
	release chan struct{}
	saving  chan struct{}
}

func (g *gatedStore) SaveObjectProp(objectKey, propKey string, data []byte) error {
	g.saving <- struct{}{}
	<-g.release
	return g.memoryStore.SaveObjectProp(objectKey, propKey, data)
}

func TestRecorderSubmitDoesNotWaitForSave(t *testing.T) {
	store := &gatedStore{
		memoryStore: newMemoryStore(),
		release:     make(chan struct{}),
		saving:      make(chan struct{}, 1),
	}
	ledger := NewLedger(store, nil)
	rec := NewRecorder(ledger, 4, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rec.Run(ctx) }()

	if !rec.Submit(Result{RunID: "a", Score: 250, At: time.Unix(1700000000, 0)}) {
		t.Fatalf("expected submit to be accepted")
	}
	select {
	case <-store.saving:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected the recorder to start saving")
	}
	if !rec.Submit(Result{RunID: "b", Score: 100, At: time.Unix(1700000001, 0)}) {
		t.Fatalf("expected submit to be accepted while a save is in progress")
	}
	close(store.release)

	deadline := time.Now().Add(2 * time.Second)
	for ledger.Games() != 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected the game to be recorded")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
	if best, ok := ledger.Best(); !ok || best != 250 {
		t.Fatalf("expected best 250, got %d %v", best, ok)
	}
}

func TestRecorderDrainsOnCancel(t *testing.T) {
	ledger := NewLedger(nil, nil)
	rec := NewRecorder(ledger, 4, nil)
	for _, score := range []int{10, 40, 20} {
		rec.Submit(Result{RunID: "r", Score: score})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rec.Run(ctx); err != nil {
		t.Fatalf("expected nil on cancel, got %v", err)
	}
	if ledger.Games() != 3 {
		t.Fatalf("expected 3 games drained, got %d", ledger.Games())
	}
	if best, _ := ledger.Best(); best != 40 {
		t.Fatalf("expected best 40, got %d", best)
	}
}

func TestRecorderDropsWhenFull(t *testing.T) {
	rec := NewRecorder(NewLedger(nil, nil), 1, nil)
	if !rec.Submit(Result{RunID: "a"}) {
		t.Fatalf("expected first submit to fit")
	}
	if rec.Submit(Result{RunID: "b"}) {
		t.Fatalf("expected second submit to be dropped")
	}
	if rec.Dropped() != 1 {
		t.Fatalf("expected 1 dropped result, got %d", rec.Dropped())
	}
}
