package telemetry

import (
	"log"

	"river-raid/server/logging"
)

// Logger exposes the text logging capability required by server tasks.
type Logger interface {
	Printf(format string, args ...any)
}

// LoggerFunc adapts functions into the Logger interface.
type LoggerFunc func(format string, args ...any)

// Printf implements Logger for LoggerFunc.
func (f LoggerFunc) Printf(format string, args ...any) {
	if f == nil {
		return
	}
	f(format, args...)
}

// WrapLogger adapts a standard library logger to the Logger interface.
func WrapLogger(logger *log.Logger) Logger {
	return &loggerAdapter{logger: logger}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return LoggerFunc(func(string, ...any) {})
}

type loggerAdapter struct {
	logger *log.Logger
}

func (l *loggerAdapter) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Printf(format, args...)
}

// StandardLogger exposes the wrapped logger for components that need one.
func (l *loggerAdapter) StandardLogger() *log.Logger {
	if l == nil {
		return nil
	}
	return l.logger
}

// Metrics exposes the counter methods required by server tasks.
type Metrics interface {
	Add(key string, delta uint64)
	Store(key string, value uint64)
}

// WrapMetrics adapts the logging metrics registry into the Metrics interface.
func WrapMetrics(metrics *logging.Metrics) Metrics {
	return &metricsAdapter{metrics: metrics}
}

// DiscardMetrics returns a Metrics that records nothing.
func DiscardMetrics() Metrics {
	return discardMetrics{}
}

type discardMetrics struct{}

func (discardMetrics) Add(string, uint64)   {}
func (discardMetrics) Store(string, uint64) {}

type metricsAdapter struct {
	metrics *logging.Metrics
}

func (m *metricsAdapter) Add(key string, delta uint64) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.TelemetryAdd(key, delta)
}

func (m *metricsAdapter) Store(key string, value uint64) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.TelemetryStore(key, value)
}

// Counter keys shared across tasks.
const (
	MetricTicks             = "sim_ticks_total"
	MetricTickDurationMicro = "sim_tick_duration_us"
	MetricTickOverruns      = "sim_tick_overruns_total"
	MetricSpawnsPrefix      = "director_spawns_total_"
	MetricInputPolls        = "ingest_polls_total"
	MetricInputAccepted     = "ingest_accepted_total"
	MetricSnapshotsWritten  = "replication_published_total"
	MetricSnapshotBytes     = "replication_last_bytes"
	MetricPublishFailures   = "replication_failures_total"
	MetricViewers           = "ws_viewers"
)
