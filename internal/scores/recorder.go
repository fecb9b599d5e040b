package scores

import (
	"context"
	"sync/atomic"
	"time"

	"river-raid/server/internal/telemetry"
)

const defaultRecorderBuffer = 16

// Result is a finished game waiting to reach the ledger.
type Result struct {
	RunID string
	Score int
	At    time.Time
}

// Recorder moves ledger writes off the caller's goroutine. Submit never
// blocks; Run performs the writes.
type Recorder struct {
	ledger  *Ledger
	logger  telemetry.Logger
	queue   chan Result
	dropped atomic.Uint64
}

func NewRecorder(ledger *Ledger, buffer int, logger telemetry.Logger) *Recorder {
	if buffer <= 0 {
		buffer = defaultRecorderBuffer
	}
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Recorder{ledger: ledger, logger: logger, queue: make(chan Result, buffer)}
}

// Submit queues res and reports false when the queue is full.
func (r *Recorder) Submit(res Result) bool {
	select {
	case r.queue <- res:
		return true
	default:
		dropped := r.dropped.Add(1)
		r.logger.Printf("[scores] queue full, dropping run %s (dropped=%d)", res.RunID, dropped)
		return false
	}
}

// Dropped counts results rejected by Submit.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

// Run records queued results until ctx is cancelled, then drains the queue.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return nil
		case res := <-r.queue:
			r.record(res)
		}
	}
}

func (r *Recorder) drain() {
	for {
		select {
		case res := <-r.queue:
			r.record(res)
		default:
			return
		}
	}
}

func (r *Recorder) record(res Result) {
	best, err := r.ledger.Record(res.RunID, res.Score, res.At)
	if err != nil {
		r.logger.Printf("[scores] failed to record run %s: %v", res.RunID, err)
		return
	}
	if best {
		r.logger.Printf("[scores] new best %d by run %s", res.Score, res.RunID)
	}
}
