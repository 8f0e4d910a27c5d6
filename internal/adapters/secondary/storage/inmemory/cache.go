package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Npcprogramming/Taro2.0/internal/ports/cache"
)

type entry struct {
	value     string
	expiresAt time.Time // нулевое - без TTL
}

// Cache in-memory реализация cache.Cache, когда Redis не настроен
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func New() *Cache {
	return &Cache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

var _ cache.Cache = (*Cache)(nil)

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok || c.expired(e) {
		return "", fmt.Errorf("%w: %s", cache.ErrCacheMiss, key)
	}
	return e.value, nil
}

func (c *Cache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = e
	c.evictExpiredLocked()
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *Cache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	return ok && !c.expired(e), nil
}

func (c *Cache) Close() error {
	return nil
}

func (c *Cache) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

// evictExpiredLocked чистит просроченные ключи, вызывается под c.mu
func (c *Cache) evictExpiredLocked() {
	for key, e := range c.items {
		if c.expired(e) {
			delete(c.items, key)
		}
	}
}
