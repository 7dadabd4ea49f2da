package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache sits in front of the Store so repeat requests for the same host do
// not hit the database. Only positive results are cached; a missing tenant
// must stay a live lookup so newly created stores appear immediately.
type Cache interface {
	Get(ctx context.Context, key string) (*Tenant, bool)
	Set(ctx context.Context, key string, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Close() error
}

type memoryCacheEntry struct {
	tenant    *Tenant
	expiresAt time.Time
}

// memoryCache is a TTL map with periodic sweep. Suitable for a single
// process; use RedisCache when gateway replicas should share lookups.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryCache creates an in-process cache sweeping expired entries every
// sweepInterval. A non-positive interval disables the sweeper; expired
// entries are then only dropped lazily on read.
func NewMemoryCache(sweepInterval time.Duration) Cache {
	c := &memoryCache{
		entries: make(map[string]memoryCacheEntry),
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go c.sweep(sweepInterval)
	}
	return c
}

func (c *memoryCache) Get(_ context.Context, key string) (*Tenant, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Delete(context.Background(), key)
		return nil, false
	}
	return entry.tenant, true
}

func (c *memoryCache) Set(_ context.Context, key string, t *Tenant, ttl time.Duration) {
	if t == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = memoryCacheEntry{tenant: t, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *memoryCache) Close() error {
	c.once.Do(func() { close(c.stop) })
	return nil
}

func (c *memoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
