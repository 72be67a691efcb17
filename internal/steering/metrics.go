package steering

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "helm",
		Subsystem: "steering",
		Name:      "decisions_total",
		Help:      "Steering decisions by result.",
	}, []string{"result"})

	processSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "helm",
		Subsystem: "steering",
		Name:      "process_seconds",
		Help:      "Time spent in one inference.",
		Buckets:   prometheus.ExponentialBuckets(5e-6, 2, 12),
	})

	lastSteering = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "helm",
		Subsystem: "steering",
		Name:      "last_value",
		Help:      "Most recent crisp steering output.",
	})
)
