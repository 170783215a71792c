package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Export sinks.
const (
	SinkLocal = "local"
	SinkS3    = "s3"
)

// Config holds all application configuration.
type Config struct {
	Store    StoreConfig
	SQLite   SQLiteConfig
	DB       DBConfig
	Redis    RedisConfig
	Export   ExportConfig
	S3       S3Config
	Log      LogConfig
	Autosave AutosaveConfig
	Document DocumentConfig
}

// StoreConfig selects the key-value backend and how keys are named.
type StoreConfig struct {
	Backend   string `mapstructure:"backend"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// SQLiteConfig holds the local database file settings.
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	Sink            string `mapstructure:"sink"`
	Dir             string `mapstructure:"dir"`
	MaxDetailSheets int    `mapstructure:"max_detail_sheets"`
	KeyPrefix       string `mapstructure:"key_prefix"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AutosaveConfig holds draft autosave settings.
type AutosaveConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

// DocumentConfig holds new-form defaults.
type DocumentConfig struct {
	ValidityDays int `mapstructure:"validity_days"`
	DueDays      int `mapstructure:"due_days"`
	RecentLimit  int `mapstructure:"recent_limit"`
}

// Load reads configuration from the file at path, if one is given, on top of
// the built-in defaults. Environment variables are not consulted.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Store defaults
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.key_prefix", "")
	v.SetDefault("sqlite.path", "docdesk.db")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docdesk")
	v.SetDefault("db.password", "docdesk_secret")
	v.SetDefault("db.name", "docdesk")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 5)
	v.SetDefault("db.max_idle", 2)

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Export defaults
	v.SetDefault("export.sink", SinkLocal)
	v.SetDefault("export.dir", "exports")
	v.SetDefault("export.max_detail_sheets", 15)
	v.SetDefault("export.key_prefix", "")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "docdesk-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("autosave.delay", "1000ms")

	// Document defaults
	v.SetDefault("document.validity_days", 30)
	v.SetDefault("document.due_days", 30)
	v.SetDefault("document.recent_limit", 5)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: reading %s: %w", path, err)
		}
	}

	cfg := &Config{
		Store: StoreConfig{
			Backend:   strings.ToLower(strings.TrimSpace(v.GetString("store.backend"))),
			KeyPrefix: v.GetString("store.key_prefix"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("sqlite.path"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
			MaxOpen:  v.GetInt("db.max_open"),
			MaxIdle:  v.GetInt("db.max_idle"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Export: ExportConfig{
			Sink:            strings.ToLower(strings.TrimSpace(v.GetString("export.sink"))),
			Dir:             v.GetString("export.dir"),
			MaxDetailSheets: v.GetInt("export.max_detail_sheets"),
			KeyPrefix:       v.GetString("export.key_prefix"),
		},
		S3: S3Config{
			Region:    v.GetString("s3.region"),
			Bucket:    v.GetString("s3.bucket"),
			Endpoint:  v.GetString("s3.endpoint"),
			AccessKey: v.GetString("s3.access_key"),
			SecretKey: v.GetString("s3.secret_key"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Autosave: AutosaveConfig{
			Delay: v.GetDuration("autosave.delay"),
		},
		Document: DocumentConfig{
			ValidityDays: v.GetInt("document.validity_days"),
			DueDays:      v.GetInt("document.due_days"),
			RecentLimit:  v.GetInt("document.recent_limit"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("config.Load: unknown store backend %q", c.Store.Backend)
	}
	switch c.Export.Sink {
	case SinkLocal, SinkS3:
	default:
		return fmt.Errorf("config.Load: unknown export sink %q", c.Export.Sink)
	}
	if c.Export.MaxDetailSheets < 0 {
		return fmt.Errorf("config.Load: export.max_detail_sheets must not be negative")
	}
	if c.Autosave.Delay <= 0 {
		return fmt.Errorf("config.Load: autosave.delay must be positive")
	}
	return nil
}
