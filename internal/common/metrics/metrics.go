// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatnil_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chatnil_http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "path"},
	)

	ScoresComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatnil_scores_computed_total",
			Help: "Total number of compliance scores computed by status",
		},
		[]string{"status"},
	)

	ScoreOverrides = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatnil_score_overrides_total",
			Help: "Total number of officer overrides by target status",
		},
		[]string{"status"},
	)

	FMVCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatnil_fmv_calculations_total",
			Help: "Total number of fair market value calculations by tier",
		},
		[]string{"tier"},
	)

	MatchEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatnil_match_evaluations_total",
			Help: "Total number of campaign match evaluations by confidence",
		},
		[]string{"confidence"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatnil_notifications_sent_total",
			Help: "Total number of notifications sent by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)
)
