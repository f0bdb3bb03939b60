// Package store defines the key-value store abstraction used by tracecache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Set/SetEx for a key (no
// prepended/appended metadata, no re-encoding, no mutation). Counter keys
// (Incr) and list keys (RPush/LRange) live in the same keyspace as scalar
// keys; callers are responsible for not mixing kinds under one key, mirroring
// Redis semantics where a WRONGTYPE error would surface.
package store

import (
	"context"
	"time"
)

// Store is the minimal contract against the shared key-value store.
// Must be safe for concurrent use. Every method is a synchronous round-trip;
// none retries on failure.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on a missing
	// or expired key. IO/remote errors return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value without expiry, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetEx stores value with the given TTL. ttl <= 0 means no expiry.
	SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Incr atomically increments the integer at key and returns the new
	// value. A missing key counts from zero (first Incr returns 1).
	Incr(ctx context.Context, key string) (int64, error)

	// RPush appends value to the list at key, creating the list if absent.
	RPush(ctx context.Context, key string, value []byte) error

	// LRange returns list elements in [start, stop] (inclusive, negative
	// indices count from the tail, Redis-style). A missing key yields an
	// empty slice, not an error.
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// FlushAll removes every key in the store.
	FlushAll(ctx context.Context) error

	// Close releases resources.
	Close(ctx context.Context) error
}
