package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
)

// Cache is the TTL cache injected into the report service. It replaces the
// module-level export cache the service grew up with; callers own the key
// function and the TTL.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

// PreviewKey derives the cache key for the preview counters of a period.
func PreviewKey(p domain.Period) string {
	return fmt.Sprintf("preview:%s:%s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}

type memoryCache struct {
	inner *gocache.Cache
}

// NewMemory returns an in-process cache with the given default TTL.
func NewMemory(defaultTTL time.Duration) Cache {
	return &memoryCache{
		inner: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (m *memoryCache) Get(key string) (any, bool) {
	return m.inner.Get(key)
}

func (m *memoryCache) Set(key string, value any, ttl time.Duration) {
	m.inner.Set(key, value, ttl)
}

type noopCache struct{}

// NewNoop returns a cache that stores nothing. Used by the CLI runtime and
// in tests where freshness matters more than latency.
func NewNoop() Cache {
	return noopCache{}
}

func (noopCache) Get(string) (any, bool) { return nil, false }

func (noopCache) Set(string, any, time.Duration) {}
