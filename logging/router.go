package logging

import (
	"context"
	"log"
	"maps"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Counter keys the router maintains in its own registry.
const (
	MetricEventsRouted  = "logging_events_total"
	MetricEventsDropped = "logging_dropped_total"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

// Router queues published events and hands them to one worker goroutine per
// enabled sink. Publish never blocks; a full queue drops the event.
type Router struct {
	cfg      Config
	clock    Clock
	fallback *log.Logger
	fields   map[string]any
	queue    chan Event
	workers  []*sinkWorker
	metrics  Metrics

	stop   chan struct{}
	closed atomic.Bool
	wg     sync.WaitGroup

	routed     atomic.Uint64
	dropped    atomic.Uint64
	filtered   atomic.Uint64
	nextDropAt atomic.Int64
}

type RouterStats struct {
	EventsTotal   uint64            `json:"eventsTotal"`
	DroppedTotal  uint64            `json:"droppedTotal"`
	FilteredTotal uint64            `json:"filteredTotal"`
	SinkDrops     map[string]uint64 `json:"sinkDrops,omitempty"`
}

// NewRouter validates cfg and starts dispatching to every sink named in
// cfg.EnabledSinks. Sinks in the map that are not enabled are ignored.
func NewRouter(cfg Config, clock Clock, fallback *log.Logger, sinks map[string]Sink) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if fallback == nil {
		fallback = log.New(os.Stderr, "[logging] ", log.LstdFlags)
	}
	r := &Router{
		cfg:      cfg,
		clock:    clock,
		fallback: fallback,
		fields:   maps.Clone(cfg.Fields),
		queue:    make(chan Event, cfg.queueSize()),
		stop:     make(chan struct{}),
	}

	names := make([]string, 0, len(sinks))
	for name, sink := range sinks {
		if sink != nil && cfg.HasSink(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		r.workers = append(r.workers, &sinkWorker{
			name:     name,
			sink:     sinks[name],
			backlog:  make(chan Event, cfg.sinkBacklog()),
			fallback: fallback,
		})
	}

	r.wg.Add(1 + len(r.workers))
	go r.dispatch()
	for _, worker := range r.workers {
		worker := worker
		go func() {
			defer r.wg.Done()
			worker.run()
		}()
	}
	return r, nil
}

func (r *Router) dispatch() {
	defer r.wg.Done()
	defer func() {
		for _, worker := range r.workers {
			close(worker.backlog)
		}
	}()
	for {
		select {
		case event := <-r.queue:
			r.forward(event)
		case <-r.stop:
			for {
				select {
				case event := <-r.queue:
					r.forward(event)
				default:
					return
				}
			}
		}
	}
}

func (r *Router) forward(event Event) {
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	if event.ID == "" {
		event.ID = ulid.Make().String()
	}
	event = mergeFields(event, r.fields)
	r.routed.Add(1)
	r.metrics.TelemetryAdd(MetricEventsRouted, 1)
	for _, worker := range r.workers {
		worker.offer(event)
	}
}

// Publish enqueues event unless it is filtered out by severity or category
// or the router is closed. Extra is copied so callers may reuse their map.
func (r *Router) Publish(_ context.Context, event Event) {
	if r.closed.Load() {
		return
	}
	if !r.cfg.accepts(event) {
		r.filtered.Add(1)
		return
	}
	select {
	case r.queue <- cloneForFields(event):
	default:
		r.dropped.Add(1)
		r.metrics.TelemetryAdd(MetricEventsDropped, 1)
		r.warnDrop(event)
	}
}

func (r *Router) warnDrop(event Event) {
	now := r.clock.Now().UnixNano()
	next := r.nextDropAt.Load()
	if now < next {
		return
	}
	if r.nextDropAt.CompareAndSwap(next, now+r.cfg.dropWarnInterval().Nanoseconds()) {
		r.fallback.Printf("queue full, dropping event type=%s tick=%d (dropped=%d)", event.Type, event.Tick, r.dropped.Load())
	}
}

// Close stops dispatching, flushes queued events into the sinks and closes
// them. Calling Close twice is a no-op.
func (r *Router) Close(ctx context.Context) error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(r.stop)
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	var firstErr error
	for _, worker := range r.workers {
		if err := worker.sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Router) Stats() RouterStats {
	stats := RouterStats{
		EventsTotal:   r.routed.Load(),
		DroppedTotal:  r.dropped.Load(),
		FilteredTotal: r.filtered.Load(),
	}
	for _, worker := range r.workers {
		if n := worker.dropped.Load(); n > 0 {
			if stats.SinkDrops == nil {
				stats.SinkDrops = make(map[string]uint64)
			}
			stats.SinkDrops[worker.name] = n
		}
	}
	return stats
}

// Metrics exposes the counter registry owned by the router.
func (r *Router) Metrics() *Metrics {
	if r == nil {
		return nil
	}
	return &r.metrics
}

func (r *Router) Sink(name string) Sink {
	for _, worker := range r.workers {
		if worker.name == name {
			return worker.sink
		}
	}
	return nil
}

const maxRetryShift = 5

type sinkWorker struct {
	name     string
	sink     Sink
	backlog  chan Event
	fallback *log.Logger
	dropped  atomic.Uint64

	failures int
	retryAt  time.Time
}

// offer queues event for the sink. Backlog drops are reported at 1, 2, 4,
// 8, ... dropped events.
func (w *sinkWorker) offer(event Event) {
	select {
	case w.backlog <- event:
	default:
		if n := w.dropped.Add(1); n&(n-1) == 0 {
			w.fallback.Printf("sink %s backlog full, %d events dropped", w.name, n)
		}
	}
}

func (w *sinkWorker) run() {
	for event := range w.backlog {
		if w.failures > 0 {
			if wait := time.Until(w.retryAt); wait > 0 {
				time.Sleep(wait)
			}
		}
		err := w.sink.Write(event)
		if err == nil {
			w.failures = 0
			continue
		}
		w.failures++
		delay := time.Second << min(w.failures-1, maxRetryShift)
		w.retryAt = time.Now().Add(delay)
		w.fallback.Printf("sink %s failed: %v (retry in %s)", w.name, err, delay)
	}
}
