package app_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docdesk/internal/app"
	"docdesk/internal/config"
	"docdesk/internal/domain"
	"docdesk/internal/notify"
)

var fixedNow = time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "docdesk.yaml")
	body := "store:\n  backend: " + backend + "\n" +
		"sqlite:\n  path: " + filepath.Join(dir, "docdesk.db") + "\n" +
		"export:\n  dir: " + filepath.Join(dir, "exports") + "\n" +
		"autosave:\n  delay: 20ms\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func newApp(t *testing.T, cfg *config.Config, rec *notify.Recorder) *app.App {
	t.Helper()
	a, err := app.New(context.Background(), cfg,
		app.WithLogger(zap.NewNop()),
		app.WithRegisterer(prometheus.NewRegistry()),
		app.WithNotifier(rec),
		app.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return a
}

func fill(form *domain.FormInput) {
	form.CompanyName = "Acme Traders"
	form.CompanyAddress = "12 MG Road\nBengaluru"
	form.ClientName = "Ravi Kumar"
	form.ClientEmail = "ravi@example.com"
	form.Items[0].Description = "Widget"
	form.Items[0].Quantity = "2"
	form.Items[0].Rate = "100"
}

func TestApp_QuotationLifecycle(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	rec := &notify.Recorder{}
	a := newApp(t, cfg, rec)
	defer func() { require.NoError(t, a.Close()) }()
	ctx := context.Background()

	form, err := a.Desk.NewForm(domain.KindQuotation)
	require.NoError(t, err)
	fill(form)

	doc, err := a.Desk.Generate(ctx, domain.KindQuotation, form)
	require.NoError(t, err)
	assert.Equal(t, "236.00", doc.Totals().GrandTotal.StringFixed(2))

	stats, err := a.Desk.Save(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)

	_, err = a.Desk.Generate(ctx, domain.KindQuotation, form)
	assert.ErrorIs(t, err, domain.ErrDuplicateDocument)

	res, err := a.Desk.ExportAll(ctx, domain.KindQuotation)
	require.NoError(t, err)
	_, err = os.Stat(res.Location)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Export.Dir, "quotations", "All_Quotations_2026-03-07.xlsx"), res.Location)

	pdf, err := a.Desk.Print(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	require.NoError(t, a.Desk.ClearAll(ctx, domain.KindQuotation))
	all, err := a.Desk.All(ctx, domain.KindQuotation)
	require.NoError(t, err)
	assert.Empty(t, all)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, domain.SeveritySuccess, last.Severity)
}

func TestApp_SQLitePersistsAcrossRestart(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	ctx := context.Background()

	first := newApp(t, cfg, &notify.Recorder{})
	form, err := first.Desk.NewForm(domain.KindInvoice)
	require.NoError(t, err)
	fill(form)
	doc, err := first.Desk.Generate(ctx, domain.KindInvoice, form)
	require.NoError(t, err)
	_, err = first.Desk.Save(ctx, doc)
	require.NoError(t, err)

	draft := *form
	draft.ClientName = "Someone Else"
	require.NoError(t, first.Desk.AutosaveDraft(ctx, domain.KindInvoice, &draft))
	require.NoError(t, first.Close())

	second := newApp(t, cfg, &notify.Recorder{})
	defer func() { require.NoError(t, second.Close()) }()

	all, err := second.Desk.All(ctx, domain.KindInvoice)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, doc.ID, all[0].ID)

	restored, err := second.Desk.RestoreDraft(ctx, domain.KindInvoice)
	require.NoError(t, err)
	assert.Equal(t, "Someone Else", restored.Form.ClientName)

	_, err = second.Desk.RestoreDraft(ctx, domain.KindQuotation)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestApp_NewAutosave(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	a := newApp(t, cfg, &notify.Recorder{})
	defer func() { _ = a.Close() }()

	var calls atomic.Int32
	d := a.NewAutosave(func() { calls.Add(1) })
	d.Trigger()
	d.Trigger()
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestApp_NewTwiceOnSameRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	for i := 0; i < 2; i++ {
		a, err := app.New(context.Background(), testConfig(t, config.BackendMemory),
			app.WithLogger(zap.NewNop()),
			app.WithRegisterer(reg),
		)
		require.NoError(t, err, "build %d", i)
		require.NoError(t, a.Close())
	}
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.Store.Backend = "etcd"
	_, err := app.OpenStore(context.Background(), cfg)
	assert.Error(t, err)
}
