package fetcher

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK            = "ok"
	outcomeHTTPError     = "http_error"
	outcomeOfflineHit    = "offline_hit"
	outcomeOfflineMiss   = "offline_miss"
	outcomeNone          = "none"
	outcomeInternalError = "internal_error"
)

type metrics struct {
	fetches *prometheus.CounterVec
}

func newMetrics(registry prometheus.Registerer) *metrics {
	fetches := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "navcache",
			Name:      "fetches_total",
			Help:      "Number of resource fetches by cache strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)
	registry.MustRegister(fetches)

	return &metrics{fetches: fetches}
}

func (m *metrics) observe(strategy CacheStrategy, outcome string) {
	m.fetches.WithLabelValues(strategy.String(), outcome).Inc()
}
