// Package metrics declares the prometheus collectors of the editor server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_editor_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invoice_editor_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "route"})

	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_editor_mutations_total",
		Help: "Invoice collection mutations by operation and result",
	}, []string{"op", "result"})

	Fetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "invoice_editor_upstream_fetches_total",
		Help: "Invoice API fetches by result",
	}, []string{"result"})

	FetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "invoice_editor_upstream_fetch_duration_seconds",
		Help:    "Invoice API fetch latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	Sessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "invoice_editor_sessions",
		Help: "Editing sessions currently held in memory",
	})
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
