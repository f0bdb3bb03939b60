// Package local defines the optional in-process byte store fronting the
// shared page cache. It is purely an L1: correctness never depends on it,
// and a front may drop or refuse entries at any time.
package local

import "time"

// Store is a narrow byte store for hot content. Must be safe for concurrent
// use and byte-for-byte transparent: Get must return exactly the []byte
// previously passed to Set for the same key.
type Store interface {
	// Get returns (value, true) on hit; (nil, false) on miss.
	Get(key string) ([]byte, bool)

	// Set stores value with the given TTL, best-effort. Implementations
	// with a global expiry window may ignore ttl.
	Set(key string, value []byte, ttl time.Duration)

	// Del removes a key (best-effort).
	Del(key string)

	// Close releases resources.
	Close() error
}
