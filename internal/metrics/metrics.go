package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tidecast_provider_calls_total",
			Help: "Total tide provider calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	CacheOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tidecast_cache_ops_total",
			Help: "Result cache operations by layer and result",
		},
		[]string{"layer", "result"},
	)

	StaleServedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tidecast_stale_datasets_served_total",
			Help: "Tide datasets served from the stale cache after provider failure",
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tidecast_predictions_total",
			Help: "Condition predictions computed, by rating",
		},
		[]string{"rating"},
	)
)
