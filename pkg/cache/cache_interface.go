package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the data-cache layer. Repositories depend on
// this interface, not on the concrete Redis client, so tests can swap in a
// no-op or in-memory implementation.
type Cache interface {
	// Get reads a key and unmarshals the stored JSON into dest.
	// found=false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON-encoded) under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern,
	// e.g. "posts:list:*".
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
