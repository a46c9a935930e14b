package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// statsGenerationKey is bumped on every write so older stats keys go stale
const statsGenerationKey = "stats:generation"

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves like an empty cache.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// StatsKey builds a stats cache key scoped to the current write generation
func StatsKey(ctx context.Context, rdb *redis.Client, parts ...string) (string, error) {
	gen := "0" // Generation before the first write
	if rdb != nil {
		v, err := rdb.Get(ctx, statsGenerationKey).Result() // Current generation
		if err != nil && err != redis.Nil {
			return "", err // Redis unavailable
		}
		if v != "" {
			gen = v
		}
	}
	key := "stats:gen:" + gen
	for _, p := range parts {
		key += ":" + p // Append key parts
	}
	return key, nil
}

// BumpStatsGeneration invalidates every cached stats response
func BumpStatsGeneration(ctx context.Context, rdb *redis.Client) (int64, error) {
	if rdb == nil {
		return 0, nil // Caching disabled
	}
	gen, err := rdb.Incr(ctx, statsGenerationKey).Result() // Atomic increment
	if err != nil {
		return 0, err
	}
	return gen, nil
}

