package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(storageFallbacks)
}

var storageFallbacks = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "storage_fallbacks_total",
		Help: "Artifact re-hosting failures degraded to the upstream URL.",
	},
)

func IncStorageFallback() {
	storageFallbacks.Inc()
}
