package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_provider_calls_total",
			Help: "Total OpenWeatherMap API calls",
		},
		[]string{"endpoint", "status"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherdash_provider_latency_seconds",
			Help:    "OpenWeatherMap API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SessionFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_session_fetches_total",
			Help: "Session fetches by endpoint, trigger and outcome",
		},
		[]string{"endpoint", "trigger", "outcome"},
	)

	RefreshTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weatherdash_refresh_ticks_total",
			Help: "Background refresh timer firings",
		},
	)

	StaleResponsesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_stale_responses_dropped_total",
			Help: "Responses discarded because a newer request was issued",
		},
		[]string{"endpoint"},
	)
)
