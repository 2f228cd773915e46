package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProjectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "luboard_projections_total",
			Help: "Total number of boards projected at a cutoff",
		},
	)

	ProjectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "luboard_projection_duration_seconds",
			Help:    "Time spent projecting a board",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	ResolvesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "luboard_resolves_total",
			Help: "Total number of baseline recomputations",
		},
	)

	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "luboard_mutations_total",
			Help: "Operator mutations by kind",
		},
		[]string{"kind"},
	)

	ContestSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "luboard_contest_size",
			Help: "Number of loaded teams, problems and submissions",
		},
		[]string{"entity"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "luboard_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
