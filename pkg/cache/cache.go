// Package cache stores rendered images so repeated conversions skip the
// external renderer.
//
// A conversion is fully determined by the math content, the display flag,
// the scale and the renderer configuration, so its output can be cached
// under a key derived from those inputs. Backends:
//
//   - [NullCache]: never stores anything (the server default)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: shared cache backed by a MongoDB collection
//
// [Open] selects a backend from a URL. Cache failures are never fatal to a
// conversion; callers log them and fall through to the renderer.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	// TTLConversion is how long a rendered image stays cached.
	TTLConversion = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// A missing or expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
