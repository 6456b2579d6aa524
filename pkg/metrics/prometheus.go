// Package metrics provides Prometheus metrics for the compas
// recommendation engine. Metrics matter mostly for batch runs, where
// per-learner failures and scoring latency are the operational signals.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the compas engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core business metrics
	learnersScored  prometheus.Counter
	learnerFailures prometheus.Counter
	recommendations prometheus.Counter
	scoringDuration prometheus.Histogram

	// Input shape gauges
	catalogItems prometheus.Gauge
	historyRows  prometheus.Gauge
	batchWorkers prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "compas",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.learnersScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "learners_scored_total",
		Help:      "Number of learners scored successfully",
	})

	m.learnerFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "learner_failures_total",
		Help:      "Number of learners skipped due to per-learner errors",
	})

	m.recommendations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_total",
		Help:      "Number of recommendation rows emitted",
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Per-learner scoring duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.catalogItems = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_items",
		Help:      "Number of catalog rows loaded",
	})

	m.historyRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_rows",
		Help:      "Number of history rows loaded",
	})

	m.batchWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_workers",
		Help:      "Number of concurrent batch workers",
	})
}

// RecordLearnerScored increments the scored learners counter.
func RecordLearnerScored() {
	globalManager.learnersScored.Inc()
}

// RecordLearnerFailure increments the skipped learners counter.
func RecordLearnerFailure() {
	globalManager.learnerFailures.Inc()
}

// RecordRecommendations adds emitted recommendation rows.
func RecordRecommendations(n int) {
	globalManager.recommendations.Add(float64(n))
}

// RecordScoringDuration records one learner's scoring duration in milliseconds.
func RecordScoringDuration(ms float64) {
	globalManager.scoringDuration.Observe(ms)
}

// UpdateCatalogItems sets the loaded catalog size.
func UpdateCatalogItems(n int) {
	globalManager.catalogItems.Set(float64(n))
}

// UpdateHistoryRows sets the loaded history size.
func UpdateHistoryRows(n int) {
	globalManager.historyRows.Set(float64(n))
}

// UpdateBatchWorkers sets the batch worker count.
func UpdateBatchWorkers(n int) {
	globalManager.batchWorkers.Set(float64(n))
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
