package lead

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadform",
		Subsystem: "lead",
		Name:      "submissions_total",
		Help:      "Lead submissions broken down by form variant and result.",
	}, []string{"variant", "result"})

	brokerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leadform",
		Subsystem: "lead",
		Name:      "broker_latency_seconds",
		Help:      "Latency of create-lead calls to the broker.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"result"})
)
