// Package cache is a thin JSON read-through cache over Redis. Every helper
// is a no-op when Redis is not connected, so handlers never depend on it
// being up.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
)

var RDB *redis.Client
var Ctx = context.Background()

func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
}

// Get unmarshals the cached value for key into dest.
// Returns false on miss, connection failure, or decode failure.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(key).Inc()
	return true
}

// Set stores value under key for ttl.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Forget drops the given keys, ignoring ones that do not exist.
func Forget(keys ...string) {
	if RDB == nil || len(keys) == 0 {
		return
	}
	RDB.Del(Ctx, keys...)
}
