package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Allocation engine metrics
	AllocationsTotal    *prometheus.CounterVec
	AllocationLatency   prometheus.Histogram
	AllocationRunsTotal *prometheus.CounterVec

	// Availability metrics
	AvailabilityChecks  prometheus.Counter
	StatusBoardRequests prometheus.Counter

	// Schedule metrics
	ScheduleMutations *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AllocationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Role slot allocation outcomes",
		}, []string{"role", "outcome"}),
		AllocationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "allocation_duration_seconds",
			Help:      "Time spent computing one allocation pass",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		AllocationRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_runs_total",
			Help:      "Allocation passes by trigger",
		}, []string{"trigger"}),
		AvailabilityChecks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_reports_total",
			Help:      "Availability report queries served",
		}),
		StatusBoardRequests: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_board_requests_total",
			Help:      "Status board queries served",
		}),
		ScheduleMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_mutations_total",
			Help:      "Schedule writes by kind",
		}, []string{"kind"}),
	}
}

// RecordAllocation counts one role slot outcome.
func (m *Metrics) RecordAllocation(role, outcome string) {
	if m == nil {
		return
	}
	m.AllocationsTotal.WithLabelValues(role, outcome).Inc()
}
