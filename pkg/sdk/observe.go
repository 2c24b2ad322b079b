package beauty

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rows       *prometheus.GaugeVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beauty",
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "Total SDK operations by type, catalog and status.",
		}, []string{"operation", "catalog", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "beauty",
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "beauty",
			Subsystem: "sdk",
			Name:      "catalog_rows",
			Help:      "Rows in the prepared snapshot of each catalog.",
		}, []string{"catalog"}),
	}
	if err := registerOrReuse(reg, &m.operations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.rows); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("beauty: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("beauty: register metric: %w", err)
	}
	return nil
}

// observer logs and measures SDK operations. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

// observe records one operation. catalog is empty for skin operations.
func (o *observer) observe(op string, catalog Catalog, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	if o.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.metrics.operations.WithLabelValues(op, string(catalog), status).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", op, "duration", dur}
	if catalog != "" {
		attrs = append(attrs, "catalog", string(catalog))
	}
	if err != nil {
		o.logger.Warn("operation failed", append(attrs, "error", err)...)
		return
	}
	o.logger.Debug("operation completed", attrs...)
}

// prepared records the row count of a freshly prepared catalog.
func (o *observer) prepared(catalog Catalog, rows int) {
	if o == nil || o.metrics == nil {
		return
	}
	o.metrics.rows.WithLabelValues(string(catalog)).Set(float64(rows))
}
