package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process Cache used in tests and when no Valkey
// instance is configured. Entries without an expiration never expire.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time // zero means no expiry
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryItem)}
}

// Get retrieves a value; nil means the key is absent or expired.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, nil
	}
	return item.data, nil
}

// Set stores a value, overwriting any previous entry.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	item := memoryItem{data: append([]byte(nil), value...)}
	if expiration > 0 {
		item.expiresAt = time.Now().Add(expiration)
	}
	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

// Delete removes a key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

// Exists checks whether a live entry is present.
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	data, err := c.Get(ctx, key)
	return data != nil, err
}

// Close is a no-op.
func (c *MemoryCache) Close() error { return nil }

// Health is a no-op.
func (c *MemoryCache) Health(context.Context) error { return nil }
