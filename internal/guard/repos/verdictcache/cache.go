// Package verdictcache keeps recent verdicts in an LRU so repeated checks of
// the same host or identifier skip normalization and matching.
package verdictcache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/services/guard"
)

// key scopes a cached entry to the list it was decided against.
type key struct {
	kind domain.ListKind
	name string
}

// verdictCache is an LRU-backed implementation of guard.VerdictCache.
// It tracks hits, misses and evictions.
type verdictCache struct {
	lru       *lru.Cache[key, domain.Verdict]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op VerdictCache used when size <= 0.
type disabledCache struct{}

// New creates a VerdictCache with the given capacity. If size <= 0, a
// disabled no-op cache is returned that always misses and tracks no metrics.
func New(size int) (guard.VerdictCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	var vc verdictCache
	// NewWithEvict observes evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(_ key, _ domain.Verdict) {
		atomic.AddUint64(&vc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	vc.lru = cache
	return &vc, nil
}

// Get looks up a verdict. When found, increments hits; otherwise increments misses.
func (c *verdictCache) Get(kind domain.ListKind, name string) (domain.Verdict, bool) {
	if v, ok := c.lru.Get(key{kind, name}); ok {
		atomic.AddUint64(&c.hits, 1)
		return v, true
	}
	atomic.AddUint64(&c.misses, 1)
	return domain.Verdict{}, false
}

// Put stores a verdict.
func (c *verdictCache) Put(kind domain.ListKind, name string, v domain.Verdict) {
	c.lru.Add(key{kind, name}, v)
}

// Len returns the number of entries in the cache.
func (c *verdictCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *verdictCache) Purge() { c.lru.Purge() }

// Stats returns cumulative hit/miss/eviction counters.
func (c *verdictCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

func (d *disabledCache) Get(domain.ListKind, string) (domain.Verdict, bool) {
	return domain.Verdict{}, false
}

func (d *disabledCache) Put(domain.ListKind, string, domain.Verdict) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ guard.VerdictCache = (*verdictCache)(nil)
var _ guard.VerdictCache = (*disabledCache)(nil)
