package geo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup result labels.
const (
	resultHeader      = "header"
	resultCacheHit    = "cache_hit"
	resultSuccess     = "success"
	resultFailure     = "failure"
	resultSkipped     = "skipped"
	resultBreakerOpen = "breaker_open"
)

// Metrics counts how each country resolution was answered.
type Metrics struct {
	Lookups *prometheus.CounterVec
}

// NewMetrics registers the geo collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "waitlist_geo_lookups_total",
			Help: "Country resolutions by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) inc(result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(result).Inc()
}
