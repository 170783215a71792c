package port

import "context"

// KeyValueStore is the persistence backend: named slots holding one encoded
// value each. Get returns domain.ErrKeyNotFound for an absent key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
