package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(quotaDecisions, cacheRequests)
}

var (
	quotaDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quota_decisions_total",
			Help: "Quota ledger admissions and denials.",
		},
		[]string{"decision"},
	)

	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by entity and result (hit/miss).",
		},
		[]string{"entity", "result"},
	)
)

func IncQuotaDecision(decision string) {
	quotaDecisions.WithLabelValues(norm(decision)).Inc()
}

func IncCacheRequest(entity, result string) {
	cacheRequests.WithLabelValues(norm(entity), norm(result)).Inc()
}
