// Package metrics registers the Prometheus instruments the service
// exports at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks handler latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "erp_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// JanitorCycles counts sweep cycles by outcome.
	JanitorCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_janitor_cycles_total",
			Help: "Total idempotency janitor cycles",
		},
		[]string{"result"}, // "ok" or "error"
	)

	// JanitorDeletedKeys counts expired idempotency keys reclaimed.
	JanitorDeletedKeys = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "erp_janitor_deleted_keys_total",
			Help: "Total expired idempotency keys deleted",
		},
	)

	// JanitorExpiredRemaining is the expired backlog left after the last
	// sweep; nonzero means the next cycle continues the sweep.
	JanitorExpiredRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "erp_janitor_expired_remaining",
			Help: "Expired idempotency keys remaining after the last sweep",
		},
	)

	// JanitorCycleDuration tracks how long one sweep cycle takes.
	JanitorCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "erp_janitor_cycle_duration_seconds",
			Help:    "Duration of idempotency janitor cycles in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
