package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gateway's counters. One instance is created at
// startup and shared by the middleware chain and the handlers.
type Metrics struct {
	AuthOperations *prometheus.CounterVec
	RateLimited    prometheus.Counter
	Unauthorized   prometheus.Counter
}

// New creates and registers the gateway metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authgw_operations_total",
				Help: "Total number of auth operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "authgw_rate_limited_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
		),
		Unauthorized: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "authgw_perimeter_rejections_total",
				Help: "Total number of requests rejected by the API key gate",
			},
		),
	}
	reg.MustRegister(m.AuthOperations, m.RateLimited, m.Unauthorized)
	return m
}
