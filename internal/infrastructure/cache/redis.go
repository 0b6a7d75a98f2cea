package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore is a Store backed by Redis, shared by every process pointing at it
type RedisStore struct {
	Client *redis.Client
	Prefix string
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(addr string, db int, prefix string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStore{
		Client: client,
		Prefix: prefix,
	}
}

// Ping checks the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

// Get decodes the value stored under key into dest
func (s *RedisStore) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.Client.Get(ctx, s.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

// Set stores value under key for ttl
func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, s.Prefix+key, jsonValue, ttl).Err()
}

// Delete removes keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.Prefix + key
	}
	return s.Client.Del(ctx, prefixed...).Err()
}

// Close closes the client
func (s *RedisStore) Close() error {
	return s.Client.Close()
}
