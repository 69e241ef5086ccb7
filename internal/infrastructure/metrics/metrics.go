package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "currency_rates_upstream_requests_total",
		Help: "Upstream fetches by provider and outcome.",
	}, []string{"provider", "outcome"})

	RatesPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "currency_rates_persisted_total",
		Help: "Rate rows written to the store by class.",
	}, []string{"class"})

	FallbackReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "currency_rates_fallback_reads_total",
		Help: "Latest-per-currency snapshot reads by class.",
	}, []string{"class"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "currency_rates_http_request_duration_seconds",
		Help:    "Inbound HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "status"})
)
