// Package metrics provides Prometheus metrics for scan runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sustainability_scanner"

// Metrics groups the collectors updated by the pipeline. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	CandidatesTotal *prometheus.CounterVec
	RejectedTotal   *prometheus.CounterVec
	PublishedTotal  *prometheus.CounterVec
	DroppedTotal    *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	StoredArticles  prometheus.Gauge
	ErrorsTotal     *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CandidatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Raw candidates fetched per source",
			},
			[]string{"source"},
		),
		RejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_total",
				Help:      "Candidates rejected before aggregation",
			},
			[]string{"reason"},
		),
		PublishedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "published_total",
				Help:      "Articles published per pillar",
			},
			[]string{"pillar"},
		),
		DroppedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregation_dropped_total",
				Help:      "Records removed by the aggregation pass",
			},
			[]string{"step"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of scan runs in seconds",
				Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
		StoredArticles: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stored_articles",
				Help:      "Articles retained in the history store",
			},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total number of errors",
			},
			[]string{"operation"},
		),
	}
}

// RecordCandidates adds fetched candidates for a source.
func (m *Metrics) RecordCandidates(source string, n int) {
	if m == nil {
		return
	}
	m.CandidatesTotal.WithLabelValues(source).Add(float64(n))
}

// RecordRejection counts a rejected candidate.
func (m *Metrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	m.RejectedTotal.WithLabelValues(reason).Inc()
}

// RecordPublished counts a published article.
func (m *Metrics) RecordPublished(pillar string) {
	if m == nil {
		return
	}
	m.PublishedTotal.WithLabelValues(pillar).Inc()
}

// RecordDrops adds aggregation drops for a step.
func (m *Metrics) RecordDrops(step string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.DroppedTotal.WithLabelValues(step).Add(float64(n))
}

// RecordRun observes a finished run.
func (m *Metrics) RecordRun(seconds float64, stored int) {
	if m == nil {
		return
	}
	m.RunDuration.Observe(seconds)
	m.StoredArticles.Set(float64(stored))
}

// RecordError records an error.
func (m *Metrics) RecordError(operation string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(operation).Inc()
}
