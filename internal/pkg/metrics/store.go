package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records metadata store round trips.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gallery_store_operation_duration_seconds",
		Help:    "Duration of metadata store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gallery_store_operation_failures_total",
		Help: "Metadata store operations that returned an error.",
	}, []string{"operation"})
	reg.MustRegister(duration, failures)
	return &StoreMetrics{
		duration: duration,
		failures: failures,
	}
}

// Observe records one operation. Pass the operation error, nil on success.
func (m *StoreMetrics) Observe(operation string, started time.Time, err error) {
	if m == nil || m.duration == nil {
		return
	}
	operation = normalizeLabel(operation)
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	if err != nil {
		m.failures.WithLabelValues(operation).Inc()
	}
}
