package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so the implementation
// can be swapped (Redis, in-memory for tests).
type Cache interface {
	// Get fetches and unmarshals into dest.
	// found = false means cache miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}
