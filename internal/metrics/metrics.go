package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxconvert_upstream_requests_total",
			Help: "Total number of forex provider calls per endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fxconvert_upstream_request_duration_seconds",
			Help:    "Forex provider call duration in seconds per endpoint",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Unlabelled: currency codes come from callers and would make the series count unbounded.
	ConversionsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fxconvert_conversions_created_total",
			Help: "Total number of persisted conversions",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fxconvert_http_requests_total",
			Help: "Total number of HTTP requests per route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	ReasonsCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fxconvert_reasons_cached",
			Help: "Number of reasons held by the reason catalogue cache",
		},
	)
)

// ObserveUpstream records one provider round trip. outcome is a domain error kind or "ok".
func ObserveUpstream(endpoint, outcome string, started time.Time) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}
