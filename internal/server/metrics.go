package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors that report HTTP activity.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	matrixCells     prometheus.Counter
}

// MustNewMetrics constructs a Metrics instance using the provided registerer.
// Tests should supply a fresh registry; registration errors panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fplan",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route and status code.",
			},
			[]string{"route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fplan",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Time spent serving HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "fplan",
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Requests currently being served.",
			},
		),
		matrixCells: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fplan",
				Subsystem: "engine",
				Name:      "matrix_cells_total",
				Help:      "Projection matrix cells computed.",
			},
		),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.inFlight, m.matrixCells)
	return m
}
