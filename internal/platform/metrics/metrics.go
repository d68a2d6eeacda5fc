// Package metrics registers the application's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid and records nothing, which keeps tests free of registry collisions.
type Metrics struct {
	DocumentsIngested    prometheus.Counter
	BatchEntriesFailed   prometheus.Counter
	LifecycleTransitions *prometheus.CounterVec
	PersistenceFailures  prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		DocumentsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notadesk_documents_ingested_total",
			Help: "Total number of documents ingested into the ledger",
		}),
		BatchEntriesFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notadesk_batch_entries_failed_total",
			Help: "Total number of batch entries that failed ingestion",
		}),
		LifecycleTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notadesk_lifecycle_transitions_total",
			Help: "Total number of document lifecycle transitions by action",
		}, []string{"action"}),
		PersistenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notadesk_persistence_failures_total",
			Help: "Total number of failed durable write-throughs",
		}),
	}
}

// IncrementIngested increments the ingest counter by 1.
func (m *Metrics) IncrementIngested() {
	if m == nil {
		return
	}
	m.DocumentsIngested.Inc()
}

// IncrementBatchFailed increments the batch failure counter by 1.
func (m *Metrics) IncrementBatchFailed() {
	if m == nil {
		return
	}
	m.BatchEntriesFailed.Inc()
}

// IncrementTransition increments the transition counter for an action.
func (m *Metrics) IncrementTransition(action string) {
	if m == nil {
		return
	}
	m.LifecycleTransitions.WithLabelValues(action).Inc()
}

// IncrementPersistenceFailure increments the write-through failure counter.
func (m *Metrics) IncrementPersistenceFailure() {
	if m == nil {
		return
	}
	m.PersistenceFailures.Inc()
}
