package logging

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Sink names the server knows how to build.
const (
	SinkConsole = "console"
	SinkJSON    = "json"
	SinkMemory  = "memory"
)

var knownCategories = []string{CategoryGameplay, CategoryLifecycle, CategorySimulation, CategoryNetwork}

type Config struct {
	EnabledSinks []string
	// QueueSize bounds the router queue. Each sink backlog is derived from
	// it and clamped to [32, 1024].
	QueueSize       int
	MinimumSeverity Severity
	// Categories limits routing to the listed event categories. Empty routes
	// every category.
	Categories       []string
	Fields           map[string]any
	JSON             JSONConfig
	DropWarnInterval time.Duration
}

type JSONConfig struct {
	FilePath      string
	FlushInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		EnabledSinks:     []string{SinkConsole},
		QueueSize:        512,
		MinimumSeverity:  SeverityInfo,
		DropWarnInterval: 5 * time.Second,
		JSON:             JSONConfig{FlushInterval: 2 * time.Second},
	}
}

func (c Config) HasSink(name string) bool {
	return slices.Contains(c.EnabledSinks, name)
}

// Validate reports unknown sinks and categories and a json sink without a
// file path.
func (c Config) Validate() error {
	var errs []error
	for _, name := range c.EnabledSinks {
		switch name {
		case SinkConsole, SinkMemory:
		case SinkJSON:
			if c.JSON.FilePath == "" {
				errs = append(errs, fmt.Errorf("json sink requires a file path"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown sink %q", name))
		}
	}
	for _, category := range c.Categories {
		if !slices.Contains(knownCategories, category) {
			errs = append(errs, fmt.Errorf("unknown category %q", category))
		}
	}
	if c.MinimumSeverity < SeverityDebug || c.MinimumSeverity > SeverityError {
		errs = append(errs, fmt.Errorf("severity %d out of range", c.MinimumSeverity))
	}
	return errors.Join(errs...)
}

func (c Config) accepts(event Event) bool {
	if event.Type == "" || event.Severity < c.MinimumSeverity {
		return false
	}
	return len(c.Categories) == 0 || slices.Contains(c.Categories, event.Category)
}

func (c Config) queueSize() int {
	if c.QueueSize <= 0 {
		return 512
	}
	return c.QueueSize
}

func (c Config) sinkBacklog() int {
	return min(max(c.queueSize(), 32), 1024)
}

func (c Config) dropWarnInterval() time.Duration {
	if c.DropWarnInterval <= 0 {
		return 5 * time.Second
	}
	return c.DropWarnInterval
}
