package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsEnriched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_enriched_total",
			Help: "Total number of leads enriched, by resulting status",
		},
		[]string{"status"},
	)

	oracleLookupErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "oracle_lookup_errors_total",
			Help: "Total number of failed nationality lookups",
		},
	)

	syncCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_cycles_total",
			Help: "Total number of CRM sync cycles executed",
		},
	)

	leadsSynced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_synced_total",
			Help: "Total number of leads forwarded to the CRM",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordLeadEnriched(status string) {
	leadsEnriched.WithLabelValues(status).Inc()
}

func RecordOracleError() {
	oracleLookupErrors.Inc()
}

func RecordSyncCycle(syncedCount int) {
	syncCycles.Inc()
	leadsSynced.Add(float64(syncedCount))
}
