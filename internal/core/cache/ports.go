package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist or has
// expired. Callers distinguish it from connection failures with errors.Is.
var ErrKeyNotFound = errors.New("key not found")

// Cache is the port for small shared state that lives outside a single
// process, such as the report of the most recent tracking run. Implementations
// must keep Get/Set/Delete safe for concurrent use.
type Cache interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
