package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"crypto-dashboard-service/internal/model"
)

const redisKeyPrefix = "crypto_dashboard:series:"

// RedisCache stores price series in Redis so the cache survives process
// restarts and can be shared across instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisCache creates a Redis-backed series cache.
func NewRedisCache(config Config) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: rdb,
		ttl:    config.TTL,
		prefix: redisKeyPrefix,
	}, nil
}

// Get returns the cached series for the query, if present.
func (rc *RedisCache) Get(query model.RangeQuery) (model.PriceSeries, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	val, err := rc.client.Get(ctx, rc.prefix+query.Key()).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached series: %w", err)
	}

	var series model.PriceSeries
	if err := json.Unmarshal([]byte(val), &series); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached series: %w", err)
	}

	return series, true, nil
}

// Set stores the series for the query. A zero TTL keeps the entry forever.
func (rc *RedisCache) Set(query model.RangeQuery, series model.PriceSeries) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal series: %w", err)
	}

	return rc.client.Set(ctx, rc.prefix+query.Key(), string(data), rc.ttl).Err()
}

// Size returns the number of cached entries.
func (rc *RedisCache) Size() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var count int
	iter := rc.client.Scan(ctx, 0, rc.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return count, nil
}

// Clear removes all cached entries under the cache prefix.
func (rc *RedisCache) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	iter := rc.client.Scan(ctx, 0, rc.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) > 0 {
		return rc.client.Del(ctx, keys...).Err()
	}
	return nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// NewCacheFromConfig creates a cache instance based on configuration and
// wraps it with metrics instrumentation.
func NewCacheFromConfig(backend string, config Config) (Cache, error) {
	var cache Cache
	var err error

	switch strings.ToLower(backend) {
	case "memory", "":
		cache = NewSeriesCache()
	case "redis":
		cache, err = NewRedisCache(config)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", backend)
	}

	return NewInstrumentedCache(cache, strings.ToLower(backend)), nil
}
