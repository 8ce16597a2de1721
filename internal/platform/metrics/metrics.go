// Package metrics agrupa los collectors Prometheus del servicio.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	PedigreeLookups prometheus.Histogram
	PedigreeIssues  *prometheus.CounterVec

	SessionsCreated prometheus.Counter
	LoginFailures   prometheus.Counter
}

// New crea y registra los collectors sobre un registry propio
// (no usamos el global para que los tests puedan crear varios routers).
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catreg_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catreg_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PedigreeLookups: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catreg_pedigree_lookups",
			Help:    "Cat lookups performed per ancestry resolution",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}),
		PedigreeIssues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catreg_pedigree_issues_total",
			Help: "Broken parent references found while resolving pedigrees",
		}, []string{"kind"}),
		SessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catreg_sessions_created_total",
			Help: "Sessions created by successful logins",
		}),
		LoginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catreg_login_failures_total",
			Help: "Rejected login attempts",
		}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.PedigreeLookups,
		m.PedigreeIssues,
		m.SessionsCreated,
		m.LoginFailures,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	return m, nil
}

// ObserveHTTP registra un request terminado.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObservePedigree registra lookups e issues de una resolución.
func (m *Metrics) ObservePedigree(lookups int, issueKinds []string) {
	if m == nil {
		return
	}
	m.PedigreeLookups.Observe(float64(lookups))
	for _, k := range issueKinds {
		m.PedigreeIssues.WithLabelValues(k).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
