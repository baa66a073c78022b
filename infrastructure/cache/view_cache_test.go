package cache

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(ttl time.Duration) (*ViewCache[*int], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewViewCache[*int](ttl)
	c.now = clock.Now
	return c, clock
}

func TestViewCacheGetOrCreateReusesEntry(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	created := 0
	create := func() *int {
		created++
		v := created
		return &v
	}

	a := c.GetOrCreate("viewer:1", create)
	b := c.GetOrCreate("viewer:1", create)
	if a != b || created != 1 {
		t.Fatalf("expected one shared entry, created=%d", created)
	}

	other := c.GetOrCreate("viewer:2", create)
	if other == a || created != 2 {
		t.Fatalf("expected separate entry per key, created=%d", created)
	}
}

func TestViewCacheExpiresIdleEntries(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	first := c.GetOrCreate("k", func() *int { v := 1; return &v })

	clock.Advance(50 * time.Second)
	if _, ok := c.Find("k"); !ok {
		t.Fatalf("expected entry to be live before ttl")
	}
	// Touching through GetOrCreate refreshes lastSeen.
	c.GetOrCreate("k", func() *int { v := 2; return &v })
	clock.Advance(50 * time.Second)
	if got, ok := c.Find("k"); !ok || got != first {
		t.Fatalf("expected refreshed entry to survive")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := c.Find("k"); ok {
		t.Fatalf("expected entry to expire")
	}
	second := c.GetOrCreate("k", func() *int { v := 3; return &v })
	if second == first || *second != 3 {
		t.Fatalf("expected expired entry to be recreated")
	}
}

func TestViewCacheSweep(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.GetOrCreate("b", func() *int { return new(int) })
	c.GetOrCreate("a", func() *int { return new(int) })
	clock.Advance(2 * time.Minute)
	c.GetOrCreate("c", func() *int { return new(int) })

	if removed := c.Sweep(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if removed := c.Sweep(); removed != 0 {
		t.Fatalf("expected nothing left to sweep, got %d", removed)
	}
	if _, ok := c.Find("c"); !ok {
		t.Fatalf("expected c to survive the sweep")
	}
	if _, ok := c.Find("a"); ok {
		t.Fatalf("expected a to be swept")
	}
}

func TestViewCacheConcurrentCreate(t *testing.T) {
	c, _ := newTestCache(0)
	var mu sync.Mutex
	created := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.GetOrCreate("shared", func() *int {
				mu.Lock()
				created++
				mu.Unlock()
				return new(int)
			})
		}()
	}
	wg.Wait()
	if created != 1 {
		t.Fatalf("expected exactly one creation, got %d", created)
	}
}
