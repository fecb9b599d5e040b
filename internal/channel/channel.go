// Package channel abstracts the latest-value exchange between the server and
// its clients. Inputs are polled and lossy; snapshots are best effort.
package channel

import (
	"context"
	"errors"
	"sync"

	"river-raid/server/internal/net/proto"
)

// ErrNoInput reports that a source had nothing new to offer.
var ErrNoInput = errors.New("channel: no input")

// InputSource yields the most recent input document, if any.
type InputSource interface {
	TryTakeLatest(ctx context.Context) (proto.Input, bool)
}

// SnapshotSink accepts published state documents.
type SnapshotSink interface {
	Publish(ctx context.Context, state proto.State) error
}

// InputSourceFunc adapts a function into an InputSource.
type InputSourceFunc func(ctx context.Context) (proto.Input, bool)

func (f InputSourceFunc) TryTakeLatest(ctx context.Context) (proto.Input, bool) {
	if f == nil {
		return proto.Input{}, false
	}
	return f(ctx)
}

// SnapshotSinkFunc adapts a function into a SnapshotSink.
type SnapshotSinkFunc func(ctx context.Context, state proto.State) error

func (f SnapshotSinkFunc) Publish(ctx context.Context, state proto.State) error {
	if f == nil {
		return nil
	}
	return f(ctx, state)
}

// Latest is an in-memory latest-value cell usable as both ends of a channel.
// The zero value is empty and ready.
type Latest[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
	count uint64
}

// Store replaces the held value.
func (l *Latest[T]) Store(v T) {
	l.mu.Lock()
	l.value = v
	l.set = true
	l.count++
	l.mu.Unlock()
}

// Load returns the held value without consuming it.
func (l *Latest[T]) Load() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.set
}

// Count reports how many values were stored.
func (l *Latest[T]) Count() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// LatestInput is a Latest cell serving as an InputSource.
type LatestInput struct {
	Latest[proto.Input]
}

func (l *LatestInput) TryTakeLatest(context.Context) (proto.Input, bool) {
	return l.Load()
}

// LatestState is a Latest cell serving as a SnapshotSink.
type LatestState struct {
	Latest[proto.State]
}

func (l *LatestState) Publish(_ context.Context, state proto.State) error {
	l.Store(state)
	return nil
}

// Fanout publishes to every sink and joins their errors.
func Fanout(sinks ...SnapshotSink) SnapshotSink {
	live := make([]SnapshotSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			live = append(live, sink)
		}
	}
	return SnapshotSinkFunc(func(ctx context.Context, state proto.State) error {
		var errs []error
		for _, sink := range live {
			if err := sink.Publish(ctx, state); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// Merge polls every source and keeps the input with the newest timestamp.
// Ties go to the earlier source.
func Merge(sources ...InputSource) InputSource {
	return InputSourceFunc(func(ctx context.Context) (proto.Input, bool) {
		var best proto.Input
		found := false
		for _, source := range sources {
			if source == nil {
				continue
			}
			in, ok := source.TryTakeLatest(ctx)
			if !ok {
				continue
			}
			if !found || in.Timestamp > best.Timestamp {
				best = in
				found = true
			}
		}
		return best, found
	})
}
