package notation

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"
)

// CacheStats reports result cache activity.
type CacheStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Runs    uint64 `json:"runs"`
	Entries int    `json:"entries"`
}

// resultCache maps content keys to finished results. Concurrent misses on
// the same key share a single pipeline run.
type resultCache struct {
	mu    sync.Mutex
	lru   *lru.Cache
	group singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	runs   atomic.Uint64
}

func newResultCache(size int) *resultCache {
	return &resultCache{lru: lru.New(size)}
}

// cacheKey combines the content hash with the context identity.
func cacheKey(text string, pc *ParseContext) uint64 {
	return xxh3.HashString(text) ^ pc.identity()
}

func (c *resultCache) lookup(key uint64) (*ParseResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	return v.(*ParseResult), true
}

// computed is the outcome of one pipeline run.
type computed struct {
	result *ParseResult
	// keep stores result in the cache.
	keep bool
	// abandoned marks a run cut short by its own caller's cancellation.
	// Other callers sharing the run must not accept it.
	abandoned bool
}

// get returns the cached result for key, running compute on a miss. The
// second return value reports a hit. Concurrent misses share one run.
func (c *resultCache) get(
	key uint64,
	compute func() computed,
) (computed, bool) {
	if r, ok := c.lookup(key); ok {
		c.hits.Add(1)

		return computed{result: r, keep: true}, true
	}

	c.misses.Add(1)

	v, _, _ := c.group.Do(strconv.FormatUint(key, 36), func() (any, error) {
		if r, ok := c.lookup(key); ok {
			return computed{result: r, keep: true}, nil
		}

		return c.run(key, compute), nil
	})

	return v.(computed), false
}

// run calls compute and stores a result that asks to be kept.
func (c *resultCache) run(key uint64, compute func() computed) computed {
	c.runs.Add(1)

	out := compute()
	if out.keep {
		c.mu.Lock()
		c.lru.Add(key, out.result)
		c.mu.Unlock()
	}

	return out
}

func (c *resultCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Clear()
}

func (c *resultCache) stats() CacheStats {
	c.mu.Lock()
	entries := c.lru.Len()
	c.mu.Unlock()

	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Runs:    c.runs.Load(),
		Entries: entries,
	}
}
