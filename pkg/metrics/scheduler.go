package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SchedulerMetrics records per-job outcomes of the background scheduler.
type SchedulerMetrics struct {
	JobRuns     *prometheus.CounterVec
	JobFailures *prometheus.CounterVec
	JobDuration *prometheus.HistogramVec

	OrdersAdvanced prometheus.Counter
	LockContention prometheus.Counter
}

func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	factory := promauto.With(reg)

	return &SchedulerMetrics{
		JobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brewpos",
			Subsystem: "scheduler",
			Name:      "job_runs_total",
			Help:      "Scheduler job executions by job name.",
		}, []string{"job"}),
		JobFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brewpos",
			Subsystem: "scheduler",
			Name:      "job_failures_total",
			Help:      "Scheduler job executions that returned an error.",
		}, []string{"job"}),
		JobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "brewpos",
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Scheduler job execution latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		OrdersAdvanced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "brewpos",
			Subsystem: "scheduler",
			Name:      "orders_advanced_total",
			Help:      "Order status transitions applied by the status job.",
		}),
		LockContention: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "brewpos",
			Subsystem: "scheduler",
			Name:      "lock_contention_total",
			Help:      "Ticks skipped because another worker held the lock.",
		}),
	}
}
