// Package cache stores rendered chart responses.
//
// Rendering the same chart twice (same style, type, data and size) yields the
// same SVG, so successful responses from the render service can be reused.
// Failures are never cached.
//
// # Backends
//
//   - [NullCache]: stores nothing; the default
//   - [FileCache]: one JSON file per entry under a local directory
//   - [RedisCache]: shared cache for several CLI users or server instances
//
// Use [Open] to construct a backend from configuration.
//
// # Keys
//
// Keys are derived with a [Keyer]. [DefaultKeyer] hashes the request so the
// key length is bounded regardless of the table size; [ScopedKeyer] adds a
// namespace prefix when several applications share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache discards writes and misses on every read. It is the backend
// when caching is off.
type NullCache struct{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
