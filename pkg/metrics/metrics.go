// Package metrics provides Prometheus metrics for the evaluation gateway.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// Manager owns the registry and the service's instruments.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	evaluationsSaved *prometheus.CounterVec
	combinedQueries  prometheus.Counter
	requestDuration  *prometheus.HistogramVec
}

func New(opts ...Option) *Manager {
	m := &Manager{
		namespace: "sertie",
		registry:  prometheus.NewRegistry(),
	}
	for _, o := range opts {
		o(m)
	}

	m.evaluationsSaved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "evaluations_saved_total",
		Help:      "Evaluations persisted, by judge role and decision.",
	}, []string{"judge_role", "decision"})

	m.combinedQueries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "combined_score_queries_total",
		Help:      "Combined-score computations served.",
	})

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})

	m.registry.MustRegister(
		m.evaluationsSaved,
		m.combinedQueries,
		m.requestDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Manager) EvaluationSaved(judgeRole, decision string) {
	m.evaluationsSaved.WithLabelValues(judgeRole, decision).Inc()
}

func (m *Manager) CombinedQueried() {
	m.combinedQueries.Inc()
}

// Handler serves the registry for scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request latency per method and status code.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		m.requestDuration.
			WithLabelValues(r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
