// Package app wires configuration, storage, export and the desk service
// together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docdesk/internal/autosave"
	"docdesk/internal/config"
	"docdesk/internal/logger"
	"docdesk/internal/metrics"
	"docdesk/internal/notify"
	"docdesk/internal/port"
	"docdesk/internal/printout"
	"docdesk/internal/repository/kv"
	"docdesk/internal/repository/memory"
	"docdesk/internal/repository/postgres"
	"docdesk/internal/repository/redis"
	"docdesk/internal/repository/sqlite"
	"docdesk/internal/service"
	"docdesk/internal/storage/local"
	s3storage "docdesk/internal/storage/s3"
	"docdesk/internal/validator"
	"docdesk/internal/xlsxexport"
)

// App holds the running core.
type App struct {
	Config *config.Config
	Log    *zap.Logger
	Desk   service.DeskService

	store port.KeyValueStore
}

type options struct {
	log        *zap.Logger
	registerer prometheus.Registerer
	notifiers  []port.Notifier
	now        func() time.Time
}

// Option customizes New.
type Option func(*options)

// WithLogger replaces the logger built from config.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRegisterer registers metrics on reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithNotifier adds a notifier next to the log notifier, typically the
// presentation layer's status bar.
func WithNotifier(n port.Notifier) Option {
	return func(o *options) { o.notifiers = append(o.notifiers, n) }
}

// WithClock overrides the time source for numbering, drafts and exports.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds the core from cfg.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{registerer: prometheus.DefaultRegisterer, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	log := o.log
	if log == nil {
		var err error
		if log, err = logger.New(cfg.Log); err != nil {
			return nil, fmt.Errorf("app.New: %w", err)
		}
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}

	sink, err := OpenSink(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("app.New: %w", err)
	}

	deskMetrics, err := metrics.NewDeskMetrics(o.registerer)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("app.New: registering metrics: %w", err)
	}

	keys := kv.DefaultKeys(cfg.Store.KeyPrefix)
	engine := validator.NewEngine(validator.NewDefaultRegistry(), validator.WithClock(o.now))
	notifier := append(notify.Fanout{notify.NewLogNotifier(log)}, o.notifiers...)

	desk := service.NewDeskService(
		kv.NewDocumentRepo(store, keys, log),
		kv.NewDraftRepo(store, keys, log),
		engine,
		xlsxexport.NewExporter(cfg.Export.MaxDetailSheets),
		printout.New(),
		sink,
		notifier,
		deskMetrics,
		log,
		service.Settings{
			ValidityDays:    cfg.Document.ValidityDays,
			DueDays:         cfg.Document.DueDays,
			RecentLimit:     cfg.Document.RecentLimit,
			ExportKeyPrefix: cfg.Export.KeyPrefix,
			Now:             o.now,
		},
	)

	log.Info("docdesk core ready",
		zap.String("store", cfg.Store.Backend),
		zap.String("export_sink", cfg.Export.Sink),
	)
	return &App{Config: cfg, Log: log, Desk: desk, store: store}, nil
}

// NewAutosave returns a debouncer that runs fn after the configured quiet
// period. The presentation layer triggers it on every form edit.
func (a *App) NewAutosave(fn func()) *autosave.Debouncer {
	return autosave.New(a.Config.Autosave.Delay, fn)
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	err := a.store.Close()
	_ = a.Log.Sync()
	return err
}

// OpenStore connects the configured key-value backend.
func OpenStore(ctx context.Context, cfg *config.Config) (port.KeyValueStore, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewKVStore(), nil
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.NewKVStore(db), nil
	case config.BackendPostgres:
		if err := postgres.Migrate(&cfg.DB); err != nil {
			return nil, err
		}
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, err
		}
		return postgres.NewKVStore(db), nil
	case config.BackendRedis:
		client, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redis.NewKVStore(client), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// OpenSink creates the configured export destination.
func OpenSink(ctx context.Context, cfg *config.Config) (port.ObjectStorage, error) {
	switch cfg.Export.Sink {
	case config.SinkLocal:
		return local.NewLocalStorage(cfg.Export.Dir)
	case config.SinkS3:
		return s3storage.NewS3Client(ctx, &cfg.S3)
	}
	return nil, fmt.Errorf("unknown export sink %q", cfg.Export.Sink)
}
