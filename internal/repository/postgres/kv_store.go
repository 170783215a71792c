package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type kvStore struct {
	db *sqlx.DB
}

// NewKVStore creates a PostgreSQL-backed KeyValueStore. The kv_entries table
// must exist; see Migrate.
func NewKVStore(db *sqlx.DB) port.KeyValueStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value,
		"SELECT slot_value FROM kv_entries WHERE slot_key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("kvStore.Get: %w", err)
	}
	return value, nil
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_entries (slot_key, slot_value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot_key) DO UPDATE SET slot_value = EXCLUDED.slot_value, updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("kvStore.Put: %w", err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE slot_key = $1", key); err != nil {
		return fmt.Errorf("kvStore.Delete: %w", err)
	}
	return nil
}

func (s *kvStore) Close() error {
	return s.db.Close()
}
