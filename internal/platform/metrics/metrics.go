package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for operation counters.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all Prometheus metrics for the ledger.
type Metrics struct {
	// Operation outcomes by operation name and outcome
	OperationsTotal *prometheus.CounterVec

	// Operation latency by operation name
	OperationLatency *prometheus.HistogramVec

	// Validity check results
	ValidityChecks *prometheus.CounterVec
}

// New creates and registers all ledger metrics.
func New() *Metrics {
	return &Metrics{
		OperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medledger_operations_total",
			Help: "Total ledger operations by operation and outcome",
		}, []string{"operation", "outcome"}),

		OperationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medledger_operation_duration_seconds",
			Help:    "Duration of ledger operations including the transaction boundary",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		ValidityChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "medledger_validity_checks_total",
			Help: "Total consent validity evaluations by result",
		}, []string{"result"}),
	}
}

// IncOperation records one operation outcome.
func (m *Metrics) IncOperation(operation, outcome string) {
	if m != nil && m.OperationsTotal != nil {
		m.OperationsTotal.WithLabelValues(operation, outcome).Inc()
	}
}

// ObserveOperation records the duration of one operation.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil && m.OperationLatency != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncValidityCheck records one validity evaluation result.
func (m *Metrics) IncValidityCheck(valid bool) {
	if m != nil && m.ValidityChecks != nil {
		result := "invalid"
		if valid {
			result = "valid"
		}
		m.ValidityChecks.WithLabelValues(result).Inc()
	}
}
