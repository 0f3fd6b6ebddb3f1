package menucache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const serviceName = "campusbites"

// Cache stores serialized values under namespaced keys. Get returns an empty
// string without error on a miss.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	GenerateKey(operation, key string) string
	Close() error
}

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisCache implements Cache on top of go-redis.
type RedisCache struct {
	client redisClient
}

// NewRedisCache connects lazily to the Redis server at addr.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) GenerateKey(operation, key string) string {
	return generateKey(operation, key)
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Set(context.Context, string, string, time.Duration) error { return nil }
func (NopCache) Get(context.Context, string) (string, error)              { return "", nil }
func (NopCache) Delete(context.Context, ...string) error                  { return nil }
func (NopCache) GenerateKey(operation, key string) string                 { return generateKey(operation, key) }
func (NopCache) Close() error                                             { return nil }

func generateKey(operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", serviceName, operation, key)
}
