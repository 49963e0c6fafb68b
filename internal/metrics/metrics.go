// Package metrics holds the Prometheus counters for translation runs. The CLI
// is short-lived, so the registry is written out as a node_exporter textfile
// instead of being scraped.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Segment outcomes.
const (
	OutcomeTranslated = "translated"
	OutcomeFallback   = "fallback"
)

// Backend call results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds Prometheus counters and gauges for subtrans runs. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	segmentsTotal *prometheus.CounterVec
	callsTotal    *prometheus.CounterVec
	retriesTotal  *prometheus.CounterVec
	runDuration   *prometheus.GaugeVec
}

// New creates and registers the run metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	segmentsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtrans_segments_total",
		Help: "Subtitle segments processed, by target language and outcome",
	}, []string{"language", "outcome"})
	callsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtrans_backend_calls_total",
		Help: "Translation backend calls, by backend and result",
	}, []string{"backend", "result"})
	retriesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtrans_backend_retries_total",
		Help: "Retries issued after a failed backend call",
	}, []string{"backend"})
	runDuration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "subtrans_last_run_duration_seconds",
		Help: "Wall time of the most recent run per target language",
	}, []string{"language"})

	registry.MustRegister(segmentsTotal, callsTotal, retriesTotal, runDuration)

	return &Metrics{
		registry:      registry,
		segmentsTotal: segmentsTotal,
		callsTotal:    callsTotal,
		retriesTotal:  retriesTotal,
		runDuration:   runDuration,
	}
}

// Segment counts one segment written with the given outcome.
func (m *Metrics) Segment(language, outcome string) {
	if m == nil {
		return
	}
	m.segmentsTotal.WithLabelValues(language, outcome).Inc()
}

// BackendCall counts one call to a backend.
func (m *Metrics) BackendCall(backend, result string) {
	if m == nil {
		return
	}
	m.callsTotal.WithLabelValues(backend, result).Inc()
}

// BackendRetry counts one retry.
func (m *Metrics) BackendRetry(backend string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(backend).Inc()
}

// RunDuration records how long the latest run for language took.
func (m *Metrics) RunDuration(language string, d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.WithLabelValues(language).Set(d.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes the registry to path in the text exposition format.
// An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("metrics textfile dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics textfile: %w", err)
	}
	return nil
}
