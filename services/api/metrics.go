package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the HTTP surface.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	MentionsTotal   prometheus.Counter
	SearchHitsTotal prometheus.Counter
}

// NewMetrics creates the API metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "natlas_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		RequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "natlas_http_request_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"route"},
		),
		MentionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "natlas_mentions_detected_total",
				Help: "Total user mentions detected across processed videos",
			},
		),
		SearchHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "natlas_search_results_total",
				Help: "Total search results returned",
			},
		),
	}
}
