package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animegpt_recommendation_requests_total",
			Help: "Recommendation requests by algorithm and outcome (ok, empty, fallback)",
		},
		[]string{"algorithm", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "animegpt_recommendation_duration_seconds",
			Help:    "Time spent building a recommendation list, catalog fetch included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"algorithm"},
	)

	JikanRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animegpt_jikan_requests_total",
			Help: "Requests sent to the Jikan API by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "animegpt_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by layer (memory, redis) and result (hit, miss)",
		},
		[]string{"layer", "result"},
	)
)

// CacheResult records one cache lookup.
func CacheResult(layer string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(layer, result).Inc()
}
