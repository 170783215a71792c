// Package redis stores key-value slots in Redis, for setups where several
// desks share one backend.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"docdesk/internal/config"
	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type kvStore struct {
	client goredis.UniversalClient
}

// NewClient creates a Redis client from config and checks it is reachable.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*goredis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.Password),
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}
	return client, nil
}

// NewKVStore creates a Redis-backed KeyValueStore. Slots never expire.
func NewKVStore(client goredis.UniversalClient) port.KeyValueStore {
	return &kvStore{client: client}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis.Get %s: %w", key, err)
	}
	return v, nil
}

func (s *kvStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis.Put %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis.Delete %s: %w", key, err)
	}
	return nil
}

func (s *kvStore) Close() error {
	return s.client.Close()
}
