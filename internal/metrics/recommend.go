package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommendation engine metrics.
var (
	PrepareTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_prepare_total",
			Help:      "Catalog prepare attempts",
		},
		[]string{"catalog", "status"},
	)

	PrepareDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_prepare_duration_seconds",
			Help:      "Catalog prepare duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"catalog"},
	)

	CatalogRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_rows",
			Help:      "Rows in the prepared catalog snapshot",
		},
		[]string{"catalog"},
	)

	CatalogVocabulary = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_vocabulary_terms",
			Help:      "Terms in the fitted TF-IDF vocabulary",
		},
		[]string{"catalog"},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation requests by ranking path",
		},
		[]string{"catalog", "path"},
	)

	RecommendationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Recommendation latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"catalog", "path"},
	)

	EmptyRecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_empty_total",
			Help:      "Recommendations that returned no products",
		},
		[]string{"catalog", "path"},
	)

	IgnoredConstraintsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ignored_constraints_total",
			Help:      "Facet constraints dropped as invalid or unsupported",
		},
		[]string{"catalog", "field"},
	)
)

var registerRecommendOnce sync.Once

// RegisterRecommendMetrics registers engine metrics with the default registry. Safe to call twice.
func RegisterRecommendMetrics() {
	registerRecommendOnce.Do(func() {
		prometheus.MustRegister(
			PrepareTotal, PrepareDuration, CatalogRows, CatalogVocabulary,
			RecommendationsTotal, RecommendationDuration, EmptyRecommendationsTotal,
			IgnoredConstraintsTotal,
		)
	})
}

// Recorder feeds engine activity into the package collectors.
type Recorder struct{}

// ObservePrepare records one prepare. Gauges move only on success.
func (Recorder) ObservePrepare(kind string, rows, vocabulary int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PrepareTotal.WithLabelValues(kind, status).Inc()
	PrepareDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err == nil {
		CatalogRows.WithLabelValues(kind).Set(float64(rows))
		CatalogVocabulary.WithLabelValues(kind).Set(float64(vocabulary))
	}
}

// ObserveRecommendation records one ranking.
func (Recorder) ObserveRecommendation(kind, path string, _, returned int, d time.Duration) {
	RecommendationsTotal.WithLabelValues(kind, path).Inc()
	RecommendationDuration.WithLabelValues(kind, path).Observe(d.Seconds())
	if returned == 0 {
		EmptyRecommendationsTotal.WithLabelValues(kind, path).Inc()
	}
}

// ObserveIgnoredConstraint records a dropped constraint.
func (Recorder) ObserveIgnoredConstraint(kind, field string) {
	IgnoredConstraintsTotal.WithLabelValues(kind, field).Inc()
}
