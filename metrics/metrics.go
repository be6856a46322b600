// Package metrics defines the prometheus collectors updated by the engine.
//
// Collectors are registered on a caller-supplied prometheus.Registerer, never
// on the global default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "triangulation"

// Collectors groups the engine's metrics.
type Collectors struct {
	Runs              prometheus.Counter
	Groups            *prometheus.CounterVec
	PartitionFailures prometheus.Counter
	PartitionSeconds  prometheus.Histogram
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		Runs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed BuildGroups runs.",
		}),
		Groups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_total",
			Help:      "Triangulation groups emitted, by membership policy.",
		}, []string{"policy"}),
		PartitionFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partition_failures_total",
			Help:      "Chromosome partitions that failed or were cancelled.",
		}),
		PartitionSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "partition_duration_seconds",
			Help:      "Wall-clock time spent grouping one chromosome.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
}
