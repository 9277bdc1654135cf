// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Login outcome labels.
const (
	LoginOutcomeSuccess       = "success"
	LoginOutcomeNotAdmin      = "rejected_not_admin"
	LoginOutcomeProviderError = "provider_error"
	LoginOutcomeStorageError  = "storage_error"
)

// Collector records request and login counters.
type Collector struct {
	httpRequests *prometheus.CounterVec
	logins       *prometheus.CounterVec
}

// NewCollector registers the collectors on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_http_requests_total",
				Help: "HTTP requests by method, route, and status code.",
			},
			[]string{"method", "route", "status"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_logins_total",
				Help: "Federated login attempts by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
	}
	reg.MustRegister(c.httpRequests, c.logins)
	return c
}

// RecordHTTPRequest counts one handled request.
func (c *Collector) RecordHTTPRequest(method, route string, status int) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// RecordLogin counts one login attempt outcome.
func (c *Collector) RecordLogin(provider, outcome string) {
	c.logins.WithLabelValues(provider, outcome).Inc()
}

// Handler returns the /metrics endpoint for the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
