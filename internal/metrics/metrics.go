package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn outcomes
const (
	OutcomeCreated   = "created"
	OutcomeLocation  = "location"
	OutcomeAdvanced  = "advanced"
	OutcomeRepeated  = "repeated"
	OutcomeRecovered = "recovered"
	OutcomeFailed    = "failed"
)

var (
	ConversationTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contech_conversation_turns_total",
			Help: "Inbound messages handled, by stage at arrival and outcome",
		},
		[]string{"stage", "outcome"},
	)

	NearbyJobsFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contech_nearby_jobs_found",
			Help:    "Number of open postings returned by a nearby search",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contech_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)
)
