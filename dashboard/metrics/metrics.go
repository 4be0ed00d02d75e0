package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npdes_dashboard_api_calls_total",
			Help: "Total query-service API calls made by the dashboard",
		},
		[]string{"endpoint", "status"},
	)

	APICallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "npdes_dashboard_api_call_latency_seconds",
			Help:    "Query-service API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)
