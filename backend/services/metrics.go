package services

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "dsa_tracker"

type Metrics struct {
	TopicUpdates     *prometheus.CounterVec
	UpdateFailures   *prometheus.CounterVec
	StreakOutcomes   *prometheus.CounterVec
	BadgesAwarded    *prometheus.CounterVec
	BadgeFailures    prometheus.Counter
	LeaderboardCache *prometheus.CounterVec
	LeaderboardBuild prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TopicUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "topic_updates_total",
			Help:      "Committed topic field updates.",
		}, []string{"field"}),
		UpdateFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "topic_update_failures_total",
			Help:      "Topic updates that were rejected or rolled back.",
		}, []string{"reason"}),
		StreakOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "streak_outcomes_total",
			Help:      "Streak transitions applied by committed updates.",
		}, []string{"outcome"}),
		BadgesAwarded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "badges_awarded_total",
			Help:      "Newly awarded badges.",
		}, []string{"badge"}),
		BadgeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "badge_evaluation_failures_total",
			Help:      "Badge evaluations that failed and were skipped.",
		}),
		LeaderboardCache: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "leaderboard_cache_total",
			Help:      "Leaderboard cache lookups by result.",
		}, []string{"result"}),
		LeaderboardBuild: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "leaderboard_build_seconds",
			Help:      "Time spent recomputing the leaderboard from the store.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func failureReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "other"
	}
}
