// internal/settings/cache.go
package settings

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache is the shared, time-bounded key-value store the singleton loader reads
// through. Populated lazily; torn down with the process.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

type ttlCache struct {
	inner *ttlcache.Cache[string, any]
}

// NewTTLCache returns the default in-process Cache implementation.
func NewTTLCache() Cache {
	c := ttlcache.New[string, any]()
	go c.Start() // background eviction of expired entries
	return &ttlCache{inner: c}
}

func (c *ttlCache) Get(key string) (any, bool) {
	item := c.inner.Get(key, ttlcache.WithDisableTouchOnHit[string, any]())
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (c *ttlCache) Set(key string, value any, ttl time.Duration) {
	c.inner.Set(key, value, ttl)
}

func (c *ttlCache) Delete(key string) {
	c.inner.Delete(key)
}
