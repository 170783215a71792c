// Package metrics exposes counters for desk operations.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"docdesk/internal/domain"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// DeskMetrics counts document operations by kind and outcome. A nil
// *DeskMetrics is valid and records nothing.
type DeskMetrics struct {
	operations     *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
}

// NewDeskMetrics registers the desk collectors on reg. Calling it again on
// the same registerer shares the collectors registered first.
func NewDeskMetrics(reg prometheus.Registerer) (*DeskMetrics, error) {
	m := &DeskMetrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docdesk",
				Name:      "operations_total",
				Help:      "Document operations by kind and outcome.",
			},
			[]string{"operation", "kind", "outcome"},
		),
		exportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docdesk",
				Name:      "export_duration_seconds",
				Help:      "Time spent building and writing spreadsheet exports.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"scope"},
		),
	}

	var err error
	if m.operations, err = register(reg, m.operations); err != nil {
		return nil, err
	}
	if m.exportDuration, err = register(reg, m.exportDuration); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg. When an identical collector is already registered,
// as happens when the desk is built twice in one process, the existing one is
// returned instead.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Observe records one operation.
func (m *DeskMetrics) Observe(operation string, kind domain.DocumentKind, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, string(kind), outcome).Inc()
}

// ObserveExport records how long an export took. scope is "one" or "all".
func (m *DeskMetrics) ObserveExport(scope string, started time.Time) {
	if m == nil {
		return
	}
	m.exportDuration.WithLabelValues(scope).Observe(time.Since(started).Seconds())
}
