// Package scores keeps the high-score ledger.
package scores

import (
	"fmt"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"river-raid/server/internal/telemetry"
)

const (
	ledgerObject   = "scores"
	ledgerProperty = "ledger.yaml"
)

// Store is the persistence surface provided by gdata.Manager.
type Store interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// OpenStore opens the per-user data directory for appName.
func OpenStore(appName string) (Store, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open score store: %w", err)
	}
	return manager, nil
}

// Record is the persisted ledger document.
type Record struct {
	Best      int       `yaml:"best"`
	BestRun   string    `yaml:"best_run,omitempty"`
	Games     int       `yaml:"games"`
	LastScore int       `yaml:"last_score"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// Ledger records finished games. A nil store keeps everything in memory.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	record Record
	logger telemetry.Logger
}

// NewLedger loads the persisted record if there is one. An unreadable
// record is logged and replaced by an empty one.
func NewLedger(store Store, logger telemetry.Logger) *Ledger {
	if logger == nil {
		logger = telemetry.Discard()
	}
	l := &Ledger{store: store, logger: logger}
	if store == nil {
		return l
	}
	if !store.ObjectPropExists(ledgerObject, ledgerProperty) {
		return l
	}
	data, err := store.LoadObjectProp(ledgerObject, ledgerProperty)
	if err != nil {
		logger.Printf("[scores] failed to load ledger: %v", err)
		return l
	}
	var record Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		logger.Printf("[scores] ignoring corrupt ledger: %v", err)
		return l
	}
	l.record = record
	return l
}

// Persistent reports whether records reach disk.
func (l *Ledger) Persistent() bool {
	return l.store != nil
}

// Record adds a finished game and reports whether it set a new best.
func (l *Ledger) Record(runID string, score int, at time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	newBest := l.record.Games == 0 || score > l.record.Best
	l.record.Games++
	l.record.LastScore = score
	l.record.UpdatedAt = at.UTC()
	if newBest {
		l.record.Best = score
		l.record.BestRun = runID
	}
	return newBest, l.saveLocked()
}

func (l *Ledger) saveLocked() error {
	if l.store == nil {
		return nil
	}
	data, err := yaml.Marshal(l.record)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := l.store.SaveObjectProp(ledgerObject, ledgerProperty, data); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Best returns the best score once at least one game finished.
func (l *Ledger) Best() (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record.Best, l.record.Games > 0
}

func (l *Ledger) Games() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record.Games
}

// Snapshot copies the current record.
func (l *Ledger) Snapshot() Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record
}
