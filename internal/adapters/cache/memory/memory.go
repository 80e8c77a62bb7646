package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/nulzo/autorouter/internal/core/ports"
)

type item struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local TTL cache. Values are stored as JSON so
// callers never share mutable state through it.
type MemoryCache struct {
	items map[string]item
	mu    sync.RWMutex
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]item),
		now:   time.Now,
	}
}

var _ ports.CacheService = (*MemoryCache)(nil)

func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	it, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return ports.ErrCacheMiss
	}

	if !c.now().Before(it.expiresAt) {
		c.mu.Lock()
		// re-check, a concurrent Set may have refreshed the entry
		if cur, ok := c.items[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return ports.ErrCacheMiss
	}

	return json.Unmarshal(it.value, dest)
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item{
		value:     data,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}
