package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-starfinder/internal/astro"
	"github.com/litescript/ls-starfinder/internal/metrics"
)

// DefaultCacheTTL is how long a cached answer stays valid.
const DefaultCacheTTL = 10 * time.Minute

// Cache remembers answers from another Source. Queries are keyed by target
// and radius rounded to 1e-4 degrees. Errors are never cached.
type Cache struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedAnswer
}

type cachedAnswer struct {
	entry     Entry
	found     bool
	fetchedAt time.Time
}

// NewCache wraps src with a TTL cache. A non-positive ttl selects
// DefaultCacheTTL.
func NewCache(src Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		src:     src,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedAnswer),
	}
}

// Brightest implements Source.
func (c *Cache) Brightest(ctx context.Context, target astro.J2000, radiusDeg float64) (Entry, bool, error) {
	key := cacheKey(target, radiusDeg)

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		metrics.CacheHit()
		return cached.entry, cached.found, nil
	}
	metrics.CacheMiss()

	entry, found, err := c.src.Brightest(ctx, target, radiusDeg)
	if err != nil {
		return Entry{}, false, err
	}

	c.mu.Lock()
	c.entries[key] = cachedAnswer{entry: entry, found: found, fetchedAt: c.now()}
	c.mu.Unlock()

	return entry, found, nil
}

// Len returns the number of cached answers, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every cached answer.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cachedAnswer)
	c.mu.Unlock()
}

func cacheKey(target astro.J2000, radiusDeg float64) string {
	return fmt.Sprintf("%.4f/%.4f/%.4f", target.RAdeg, target.DecDeg, radiusDeg)
}
