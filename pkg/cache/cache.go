// Package cache stores computed layouts and rendered artifacts.
//
// Entries are opaque byte slices addressed by keys from a [Keyer]. Three
// backends are provided: [NullCache] (disabled caching), [FileCache] (CLI,
// one file per entry under the user cache directory) and [RedisCache]
// (shared cache for the HTTP server).
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cache entries.
const (
	// TTLLayout is how long computed layouts are kept.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long rendered artifacts (SVG, PNG, PDF) are kept.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key-value store with per-entry expiration.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// NullCache never stores anything. It backs --no-cache and the
// "none" backend.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
