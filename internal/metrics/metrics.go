// Package metrics exposes Prometheus instrumentation for the API:
// vote outcome counters and per-route HTTP request metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	votesTotal          prometheus.Counter
	duplicateVotesTotal prometheus.Counter
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	handler http.Handler
}

// New registers all collectors on reg and returns the Metrics handle.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		votesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "featurevote_votes_total",
			Help: "Number of upvotes applied.",
		}),
		duplicateVotesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "featurevote_duplicate_votes_total",
			Help: "Number of upvote requests rejected as duplicates.",
		}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "featurevote_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "featurevote_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// VoteApplied increments the applied-vote counter.
func (m *Metrics) VoteApplied() { m.votesTotal.Inc() }

// VoteDuplicate increments the duplicate-vote counter.
func (m *Metrics) VoteDuplicate() { m.duplicateVotesTotal.Inc() }

// Handler returns the /metrics exposition handler.
func (m *Metrics) Handler() http.Handler { return m.handler }

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Middleware records request count and latency per mux route pattern.
// Unmatched requests are grouped under a single label to keep
// cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
