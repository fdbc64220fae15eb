package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds rendered read responses. A nil *Cache is a valid, always-empty cache.
type Cache struct {
	c   *gocache.Cache
	gen atomic.Uint64

	// OnLookup observes every Get (hit or miss).
	OnLookup func(hit bool)
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Cache{c: gocache.New(ttl, 2*ttl)}
}

func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.c.Get(key)
	if c.OnLookup != nil {
		c.OnLookup(ok)
	}
	return v, ok
}

func (c *Cache) Set(key string, val any) {
	if c == nil {
		return
	}
	c.c.SetDefault(key, val)
}

// Generation changes on every Clear. Readers take it before loading from the store
// and hand it to SetIfCurrent.
func (c *Cache) Generation() uint64 {
	if c == nil {
		return 0
	}
	return c.gen.Load()
}

// SetIfCurrent stores val only when no Clear happened since gen was taken, so a read
// that raced a mutation cannot repopulate the cache with the pre-mutation value.
func (c *Cache) SetIfCurrent(key string, val any, gen uint64) bool {
	if c == nil {
		return false
	}
	if c.gen.Load() != gen {
		return false
	}
	c.c.SetDefault(key, val)
	if c.gen.Load() != gen {
		c.c.Delete(key)
		return false
	}
	return true
}

func (c *Cache) Delete(key string) {
	if c == nil {
		return
	}
	c.c.Delete(key)
}

// Clear drops everything. Mutations call it because list pages embed related rows
// (a renamed category shows up inside every project page).
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.gen.Add(1)
	c.c.Flush()
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.c.ItemCount()
}
