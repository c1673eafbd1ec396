package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dayboard/dayboard/internal/models"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "dayboard:"

// RedisStore persists engine state as JSON blobs in Redis. Values have no
// TTL: the dashboard's state must survive restarts indefinitely.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store from a Redis URL (redis://host:port/db).
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts), prefix: defaultPrefix}, nil
}

// Client exposes the underlying Redis client for health checks and the rate
// limit middleware.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// Ping verifies connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return models.StoreError("ping", err)
	}
	return nil
}

// Close releases the client's connections.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get retrieves and unmarshals the value at key. A missing key is not an
// error; it reports found=false.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, models.StoreError("get "+key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	return true, nil
}

// Set marshals and writes the value at key.
func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return models.StoreError("set "+key, err)
	}

	return nil
}
