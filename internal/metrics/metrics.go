// Package metrics provides Prometheus instrumentation. Collectors live on
// a dedicated registry exposed through Handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "echoapi"

// Callback delivery outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all collectors.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts requests by route pattern, method and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes request latency by route pattern and method.
	RequestDuration *prometheus.HistogramVec

	// CallbacksScheduled counts deferred callbacks that were scheduled.
	CallbacksScheduled prometheus.Counter

	// CallbacksDelivered counts fired callbacks by outcome.
	CallbacksDelivered *prometheus.CounterVec

	// CallbacksPending tracks callbacks scheduled but not yet fired.
	CallbacksPending prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		CallbacksScheduled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "callbacks_scheduled_total",
				Help:      "Total deferred callbacks scheduled",
			},
		),
		CallbacksDelivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "callbacks_delivered_total",
				Help:      "Total deferred callbacks fired, by outcome",
			},
			[]string{"outcome"},
		),
		CallbacksPending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "callbacks_pending",
				Help:      "Deferred callbacks waiting for their timer",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.CallbacksScheduled,
		m.CallbacksDelivered,
		m.CallbacksPending,
	)

	return m
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
