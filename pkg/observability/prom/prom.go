// Package prom implements observability hooks backed by Prometheus.
//
// The server wires these hooks at startup; library code keeps calling the
// backend-neutral observability package.
package prom

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/causallab/dagcheck/pkg/observability"
)

// Metrics holds all validator metrics and implements the observability hook
// interfaces.
type Metrics struct {
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	ParseDuration      prometheus.Histogram
	IssuesTotal        *prometheus.CounterVec
	GraphVariables     prometheus.Histogram
	GraphEdges         prometheus.Histogram

	CacheOpsTotal *prometheus.CounterVec
	CacheSetBytes prometheus.Histogram

	registry *prometheus.Registry
}

// New creates a metrics registry with all validator metrics initialized.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{registry: reg}

	m.ValidationsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dagcheck_validations_total",
			Help: "Total number of scenario validations",
		},
		[]string{"status"},
	)
	m.ValidationDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dagcheck_validation_duration_seconds",
			Help:    "Scenario validation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"status"},
	)
	m.ParseDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dagcheck_parse_duration_seconds",
			Help:    "Structure notation parse duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
	)
	m.IssuesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dagcheck_issues_total",
			Help: "Total number of validation issues by rule and severity",
		},
		[]string{"rule", "severity"},
	)
	m.GraphVariables = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dagcheck_graph_variables",
			Help:    "Number of variables per validated graph",
			Buckets: []float64{2, 5, 10, 25, 50, 100, 250},
		},
	)
	m.GraphEdges = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dagcheck_graph_edges",
			Help:    "Number of edges per validated graph",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 500},
		},
	)
	m.CacheOpsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "dagcheck_cache_operations_total",
			Help: "Total cache operations by key type and outcome",
		},
		[]string{"key_type", "outcome"},
	)
	m.CacheSetBytes = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dagcheck_cache_set_bytes",
			Help:    "Size of cached entries in bytes",
			Buckets: []float64{256, 1024, 4096, 16384, 65536},
		},
	)

	return m
}

// Register installs the metrics as the process-wide observability hooks.
func (m *Metrics) Register() {
	observability.SetValidationHooks(m)
	observability.SetCacheHooks(m)
}

// Handler returns an HTTP handler exposing the metrics in Prometheus format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// =============================================================================
// ValidationHooks implementation
// =============================================================================

func (m *Metrics) OnParseStart(ctx context.Context, scenarioID string) {}

func (m *Metrics) OnParseComplete(ctx context.Context, scenarioID string, variableCount, edgeCount int, duration time.Duration, err error) {
	m.ParseDuration.Observe(duration.Seconds())
	if err == nil {
		m.GraphVariables.Observe(float64(variableCount))
		m.GraphEdges.Observe(float64(edgeCount))
	}
}

func (m *Metrics) OnValidateStart(ctx context.Context, scenarioID string) {}

func (m *Metrics) OnValidateComplete(ctx context.Context, scenarioID string, passed bool, issueCount int, duration time.Duration, err error) {
	status := "passed"
	switch {
	case err != nil:
		status = "error"
	case !passed:
		status = "failed"
	}
	m.ValidationsTotal.WithLabelValues(status).Inc()
	m.ValidationDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *Metrics) OnIssue(ctx context.Context, rule, severity string) {
	m.IssuesTotal.WithLabelValues(rule, severity).Inc()
}

// =============================================================================
// CacheHooks implementation
// =============================================================================

func (m *Metrics) OnCacheHit(ctx context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(ctx context.Context, keyType string) {
	m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(ctx context.Context, keyType string, size int) {
	m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	m.CacheSetBytes.Observe(float64(size))
}

var (
	_ observability.ValidationHooks = (*Metrics)(nil)
	_ observability.CacheHooks      = (*Metrics)(nil)
)
