package metrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdesk/internal/domain"
	"docdesk/internal/metrics"
)

func TestDeskMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewDeskMetrics(reg)
	require.NoError(t, err)

	m.Observe("save", domain.KindInvoice, metrics.OutcomeOK)
	m.Observe("save", domain.KindInvoice, metrics.OutcomeOK)
	m.Observe("save", domain.KindInvoice, metrics.OutcomeDuplicate)
	m.ObserveExport("all", time.Now())

	count, err := testutil.GatherAndCount(reg, "docdesk_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "docdesk_export_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeskMetrics_RegisterTwiceSharesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.NewDeskMetrics(reg)
	require.NoError(t, err)
	second, err := metrics.NewDeskMetrics(reg)
	require.NoError(t, err)

	first.Observe("save", domain.KindQuotation, metrics.OutcomeOK)
	second.Observe("save", domain.KindQuotation, metrics.OutcomeOK)

	count, err := testutil.GatherAndCount(reg, "docdesk_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expected := `
# HELP docdesk_operations_total Document operations by kind and outcome.
# TYPE docdesk_operations_total counter
docdesk_operations_total{kind="quotation",operation="save",outcome="ok"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "docdesk_operations_total"))
}

func TestDeskMetrics_ConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "docdesk",
		Name:      "operations_total",
		Help:      "Something else.",
	}))
	_, err := metrics.NewDeskMetrics(reg)
	assert.Error(t, err)
}

func TestDeskMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.DeskMetrics
	assert.NotPanics(t, func() {
		m.Observe("save", domain.KindQuotation, metrics.OutcomeOK)
		m.ObserveExport("one", time.Now())
	})
}
