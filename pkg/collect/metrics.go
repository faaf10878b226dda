package collect

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poddiag_collection_duration_seconds",
			Help:    "Time taken to complete a collection run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	collectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poddiag_collection_total",
			Help: "Total number of collection run attempts",
		},
		[]string{"status"}, // success or error
	)

	commandExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poddiag_command_executions_total",
			Help: "Planned diagnostic commands executed, by outcome",
		},
		[]string{"status"}, // ok or failed
	)
)
