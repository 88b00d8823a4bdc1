package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records request counts and latencies on its own registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	imported        *prometheus.CounterVec
	saves           *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_tracker_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "budget_tracker_http_request_duration_milliseconds",
				Help:    "HTTP request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"method", "route"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "budget_tracker_http_requests_in_flight",
				Help: "Number of HTTP requests being served",
			},
		),
		imported: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_tracker_transactions_imported_total",
				Help: "Statement rows handled by imports",
			},
			[]string{"outcome"},
		),
		saves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_tracker_ledger_saves_total",
				Help: "Ledger writes to storage",
			},
			[]string{"ledger"},
		),
	}
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(float64(time.Since(start).Milliseconds()))
	})
}

// ObserveEvent counts ledger events. It is meant to be subscribed to the
// event bus.
func (m *Metrics) ObserveEvent(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case *events.TransactionsImportedEvent:
		m.imported.WithLabelValues("imported").Add(float64(e.Imported))
		m.imported.WithLabelValues("duplicated").Add(float64(e.Duplicated))
	case *events.ProjectSavedEvent:
		m.saves.WithLabelValues(e.Ledger).Inc()
	}
	return nil
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
