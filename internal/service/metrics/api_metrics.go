package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "propsight",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of API endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propsight",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Errors by API endpoint",
		},
		[]string{"endpoint"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propsight",
			Subsystem: "api",
			Name:      "cache_hits_total",
			Help:      "Cache hits by API endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIErrors, CacheHits)
	})
}
