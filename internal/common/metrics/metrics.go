package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchengine_geocode_lookups_total",
			Help: "Total number of geocode lookups by outcome",
		},
		[]string{"outcome"}, // resolved, unresolved, cached
	)

	SavedSearchRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchengine_saved_search_runs_total",
			Help: "Total number of saved-search runs by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchengine_notifications_sent_total",
			Help: "Total number of saved-search notifications by channel and status",
		},
		[]string{"channel", "status"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matchengine_recommendation_duration_seconds",
			Help: "Duration of recommendation ranking in seconds",
		},
		[]string{"status"},
	)
)
