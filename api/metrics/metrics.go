package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BuildInfo carries the build version labels, set once at startup.
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "npdes_api_build_info",
			Help: "Build information for the query service",
		},
		[]string{"version", "commit", "date"},
	)

	warehouseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "npdes_warehouse_query_duration_seconds",
			Help:    "ClickHouse query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "npdes_api_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "npdes_api_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// RecordWarehouseQuery records one warehouse round trip.
func RecordWarehouseQuery(duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	warehouseQueryDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// Middleware records per-route request counts and latency. Routes are
// labeled by chi pattern so query strings don't explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(ww.Status())).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
