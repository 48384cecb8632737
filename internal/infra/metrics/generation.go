package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		generationSeconds,
		upstreamOutcomes,
		pollAttempts,
	)
}

var (
	generationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "End-to-end generation latency per provider/model.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		},
		[]string{"provider", "model", "success"},
	)

	upstreamOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_outcomes_total",
			Help: "Terminal upstream job outcomes (done/failed/rejected/timeout).",
		},
		[]string{"provider", "outcome"},
	)

	pollAttempts = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_poll_attempts",
			Help:    "Poll attempts needed until an upstream job completed.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
		[]string{"provider"},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func ObserveGeneration(provider, model string, d time.Duration, success bool) {
	generationSeconds.WithLabelValues(norm(provider), norm(model), strconv.FormatBool(success)).
		Observe(d.Seconds())
}

func IncUpstreamOutcome(provider, outcome string) {
	upstreamOutcomes.WithLabelValues(norm(provider), norm(outcome)).Inc()
}

func ObservePollAttempts(provider string, attempts int) {
	pollAttempts.WithLabelValues(norm(provider)).Observe(float64(attempts))
}
