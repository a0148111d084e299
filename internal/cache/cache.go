// Package cache stores short lived byte payloads such as news search results.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL key-value store. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
