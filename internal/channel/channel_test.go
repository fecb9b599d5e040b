package channel

import (
	"context"
	"errors"
	"testing"

	"river-raid/server/internal/net/proto"
)

func TestLatestInputServesLastValue(t *testing.T) {
	var src LatestInput
	if _, ok := src.TryTakeLatest(context.Background()); ok {
		t.Fatalf("expected empty cell")
	}
	src.Store(proto.Input{DX: 1})
	src.Store(proto.Input{DX: 2})
	in, ok := src.TryTakeLatest(context.Background())
	if !ok || in.DX != 2 {
		t.Fatalf("expected latest dx 2, got %+v %v", in, ok)
	}
	if _, ok := src.TryTakeLatest(context.Background()); !ok {
		t.Fatalf("expected value to remain readable")
	}
	if src.Count() != 2 {
		t.Fatalf("expected 2 stores, got %d", src.Count())
	}
}

func TestFanoutJoinsErrors(t *testing.T) {
	var cell LatestState
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	sink := Fanout(
		SnapshotSinkFunc(func(context.Context, proto.State) error { return errA }),
		nil,
		&cell,
		SnapshotSinkFunc(func(context.Context, proto.State) error { return errB }),
	)

	err := sink.Publish(context.Background(), proto.State{ScrollSpeed: 2})
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
	if state, ok := cell.Load(); !ok || state.ScrollSpeed != 2 {
		t.Fatalf("expected healthy sink to receive the state despite failures")
	}

	if err := Fanout(&cell).Publish(context.Background(), proto.State{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestMergePrefersNewestTimestamp(t *testing.T) {
	var a, b LatestInput
	merged := Merge(&a, nil, &b)
	if _, ok := merged.TryTakeLatest(context.Background()); ok {
		t.Fatalf("expected no input from empty sources")
	}

	a.Store(proto.Input{DX: 1, Timestamp: 10})
	b.Store(proto.Input{DX: 2, Timestamp: 20})
	if in, _ := merged.TryTakeLatest(context.Background()); in.DX != 2 {
		t.Fatalf("expected newest input, got %+v", in)
	}

	a.Store(proto.Input{DX: 3, Timestamp: 20})
	if in, _ := merged.TryTakeLatest(context.Background()); in.DX != 3 {
		t.Fatalf("expected tie to go to the first source, got %+v", in)
	}
}
