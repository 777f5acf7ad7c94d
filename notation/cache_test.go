package notation

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestResultCache_HitReturnsSamePointer(t *testing.T) {
	c := newResultCache(4)

	var runs int

	compute := func() computed {
		runs++

		return computed{result: &ParseResult{Success: true}, keep: true}
	}

	first, hit := c.get(1, compute)
	if hit {
		t.Error("expected first lookup to miss")
	}

	second, hit := c.get(1, compute)
	if !hit {
		t.Error("expected second lookup to hit")
	}

	if first.result != second.result {
		t.Error("expected the cached pointer")
	}

	if runs != 1 {
		t.Errorf("expected one run, got %d", runs)
	}

	stats := c.stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Runs != 1 || stats.Entries != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestResultCache_NotKept(t *testing.T) {
	c := newResultCache(4)

	compute := func() computed { return computed{result: &ParseResult{}} }

	c.get(1, compute)

	if _, hit := c.get(1, compute); hit {
		t.Error("expected unkept result to miss")
	}

	if n := c.stats().Runs; n != 2 {
		t.Errorf("expected two runs, got %d", n)
	}
}

func TestResultCache_Purge(t *testing.T) {
	c := newResultCache(4)
	c.get(1, func() computed { return computed{result: &ParseResult{}, keep: true} })
	c.purge()

	if n := c.stats().Entries; n != 0 {
		t.Errorf("expected empty cache, got %d entries", n)
	}
}

func TestResultCache_ConcurrentMissesShareRun(t *testing.T) {
	c := newResultCache(4)

	var (
		runs    atomic.Int32
		release = make(chan struct{})
		wg      sync.WaitGroup
		results = make([]*ParseResult, 8)
	)

	compute := func() computed {
		runs.Add(1)
		<-release

		return computed{result: &ParseResult{}, keep: true}
	}

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			out, _ := c.get(42, compute)
			results[i] = out.result
		}()
	}

	close(release)
	wg.Wait()

	for _, r := range results[1:] {
		if r != results[0] {
			t.Fatal("expected every caller to receive the same result")
		}
	}

	if n := runs.Load(); n != 1 {
		t.Errorf("expected one run, got %d", n)
	}
}

func TestCacheKey_ContextIdentity(t *testing.T) {
	a := NewParseContext("a.txt")
	b := NewParseContext("b.txt")

	if cacheKey("x", a) == cacheKey("x", b) {
		t.Error("expected different sources to produce different keys")
	}

	if cacheKey("x", a) != cacheKey("x", NewParseContext("a.txt")) {
		t.Error("expected equal contexts to produce equal keys")
	}

	a.State["scratch"] = 1
	if cacheKey("x", a) != cacheKey("x", NewParseContext("a.txt")) {
		t.Error("expected scratch state to be excluded from the key")
	}

	a.State["heading_count"] = 2
	if cacheKey("x", a) == cacheKey("x", NewParseContext("a.txt")) {
		t.Error("expected the heading counter to be part of the key")
	}

	delete(a.State, "heading_count")

	a.Config["mode"] = "strict"
	if cacheKey("x", a) == cacheKey("x", NewParseContext("a.txt")) {
		t.Error("expected config to be part of the key")
	}

	if cacheKey("x", nil) == cacheKey("y", nil) {
		t.Error("expected content to be part of the key")
	}
}
