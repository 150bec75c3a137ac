package cache

import (
	"context"
	"sync"
	"time"
)

// PageCache stores rendered page bodies for a fixed time window. Within
// the window the snapshot is served even if the underlying posts changed;
// entries expire on their own and writes never invalidate them.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
}

// MemoryCache is a process-local PageCache. Tests and single-node
// deployments use it; clustered deployments use the Redis implementation.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	body    []byte
	expires time.Time
}

func NewMemory() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.body, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		body:    append([]byte(nil), body...),
		expires: time.Now().Add(ttl),
	}
}
