package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "scrim"

// Metrics - счетчики ядра. Нулевой *Metrics безопасен (ничего не пишет).
type Metrics struct {
	submissions         *prometheus.CounterVec
	mutations           *prometheus.CounterVec
	leaderboardDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Match result submissions by workflow outcome.",
		}, []string{"outcome"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "state_mutations_total",
			Help:      "State mutations by operation and result.",
		}, []string{"operation", "result"}),
		leaderboardDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "leaderboard_build_seconds",
			Help:      "Time spent building a leaderboard.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.submissions, m.mutations, m.leaderboardDuration)
	}
	return m
}

func (m *Metrics) submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// mutation records the result of a state mutation by error kind.
func (m *Metrics) mutation(operation string, err error) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func (m *Metrics) observeLeaderboard(started time.Time) {
	if m == nil {
		return
	}
	m.leaderboardDuration.Observe(time.Since(started).Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrAuthorization):
		return "forbidden"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	default:
		return "error"
	}
}
