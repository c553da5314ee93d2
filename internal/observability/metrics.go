package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	entriesStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantifyme_entries_stored_total",
			Help: "Entries persisted, by kind (create|correct).",
		},
		[]string{"kind"},
	)

	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantifyme_validation_failures_total",
			Help: "Rejected entries by field and reason.",
		},
		[]string{"field", "reason"},
	)

	compositeScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quantifyme_composite_score",
			Help:    "Distribution of stored Daily Cognitive Scores.",
			Buckets: prometheus.LinearBuckets(10, 10, 9), // 10..90
		},
	)

	gatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantifyme_gateway_requests_total",
			Help: "Interpretation attempts by provider and outcome (ok|error|fallback).",
		},
		[]string{"provider", "outcome"},
	)

	gatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quantifyme_gateway_duration_seconds",
			Help:    "Interpretation call latency including retries.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"provider"},
	)

	trendCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quantifyme_trend_cache_total",
			Help: "Trend window cache lookups by result (hit|miss|error).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(entriesStored, validationFailures, compositeScores, gatewayRequests, gatewayLatency, trendCache)
}

// EntryStored records a persisted entry version and its composite.
func EntryStored(kind string, composite float64) {
	entriesStored.WithLabelValues(kind).Inc()
	compositeScores.Observe(composite)
}

func ValidationFailed(field, reason string) {
	validationFailures.WithLabelValues(field, reason).Inc()
}

// GatewayCall records one interpretation with its total duration.
func GatewayCall(provider, outcome string, d time.Duration) {
	gatewayRequests.WithLabelValues(provider, outcome).Inc()
	gatewayLatency.WithLabelValues(provider).Observe(d.Seconds())
}

func TrendCacheLookup(result string) {
	trendCache.WithLabelValues(result).Inc()
}
