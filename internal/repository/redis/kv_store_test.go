package redis_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdesk/internal/config"
	"docdesk/internal/repository/redis"
)

func TestNewClient_RequiresAddr(t *testing.T) {
	_, err := redis.NewClient(context.Background(), &config.RedisConfig{Addr: "  "})
	assert.Error(t, err)
}

func TestNewClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Port 1 is reserved and never serves Redis.
	_, err := redis.NewClient(ctx, &config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestKVStore_ErrorsAreWrapped(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := redis.NewKVStore(client)
	defer s.Close()

	ctx := context.Background()
	_, err := s.Get(ctx, "quotations_data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.Get quotations_data")

	err = s.Put(ctx, "quotations_data", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.Put quotations_data")
}
