package pagecache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/unkn0wn-root/tracecache/store/memory"
)

// countingFetch returns distinct content per upstream fetch so a cache hit
// is distinguishable from a silent re-fetch.
type countingFetch struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *countingFetch) fn(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.calls++
	return fmt.Sprintf("content of %s #%d", url, f.calls), nil
}

func (f *countingFetch) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingHooks struct {
	mu     sync.Mutex
	hits   []bool // local flag per hit
	misses int
	fetchE int
}

func (h *recordingHooks) PageHit(_ string, local bool) {
	h.mu.Lock()
	h.hits = append(h.hits, local)
	h.mu.Unlock()
}
func (h *recordingHooks) PageMiss(string) {
	h.mu.Lock()
	h.misses++
	h.mu.Unlock()
}
func (h *recordingHooks) FetchError(string, error) {
	h.mu.Lock()
	h.fetchE++
	h.mu.Unlock()
}
func (h *recordingHooks) DecodeError(string, error) {}

func newTestPageCache(t *testing.T, cfgOpt func(*Config)) (*Cache, *memory.Memory, *countingFetch) {
	t.Helper()
	mem := memory.New()
	f := &countingFetch{}
	cfg := Config{Store: mem, Fetch: f.fn}
	if cfgOpt != nil {
		cfgOpt(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mem, f
}

func TestGetPageHitAndCounting(t *testing.T) {
	ctx := context.Background()
	c, _, f := newTestPageCache(t, nil)
	url := "http://example.com/a"

	first, err := c.GetPage(ctx, url)
	if err != nil {
		t.Fatalf("GetPage #1: %v", err)
	}
	if f.count() != 1 {
		t.Fatalf("fetches after first call: %d", f.count())
	}
	if n, err := c.AccessCount(ctx, url); err != nil || n != 1 {
		t.Fatalf("AccessCount after first call: n=%d err=%v", n, err)
	}

	second, err := c.GetPage(ctx, url)
	if err != nil {
		t.Fatalf("GetPage #2: %v", err)
	}
	if second != first {
		t.Fatalf("cache hit returned different content: %q vs %q", second, first)
	}
	if f.count() != 1 {
		t.Fatalf("hit triggered a fetch: %d", f.count())
	}
	if n, _ := c.AccessCount(ctx, url); n != 2 {
		t.Fatalf("AccessCount after hit: %d", n)
	}
}

func TestGetPageTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c, _, f := newTestPageCache(t, func(cfg *Config) {
		cfg.TTL = 40 * time.Millisecond
	})
	url := "http://example.com/ttl"

	first, err := c.GetPage(ctx, url)
	if err != nil {
		t.Fatalf("GetPage #1: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	third, err := c.GetPage(ctx, url)
	if err != nil {
		t.Fatalf("GetPage after expiry: %v", err)
	}
	if f.count() != 2 {
		t.Fatalf("expected re-fetch after TTL, fetches=%d", f.count())
	}
	if third == first {
		t.Fatalf("expected fresh content after expiry")
	}
	if n, _ := c.AccessCount(ctx, url); n != 2 {
		t.Fatalf("AccessCount: %d", n)
	}
}

func TestGetPageKeys(t *testing.T) {
	ctx := context.Background()
	c, mem, _ := newTestPageCache(t, nil)
	url := "http://example.com/keys"

	content, err := c.GetPage(ctx, url)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if b, ok, _ := mem.Get(ctx, "cache:"+url); !ok || string(b) != content {
		t.Fatalf("cache:<url> entry missing or wrong: ok=%v", ok)
	}
	if b, ok, _ := mem.Get(ctx, "count:"+url); !ok || string(b) != "1" {
		t.Fatalf("count:<url> entry missing or wrong: ok=%v b=%q", ok, b)
	}
}

func TestGetPageFetchErrorPropagates(t *testing.T) {
	ctx := context.Background()
	hooks := &recordingHooks{}
	c, mem, f := newTestPageCache(t, func(cfg *Config) {
		cfg.Hooks = hooks
	})
	f.err = errors.New("upstream down")
	url := "http://example.com/err"

	if _, err := c.GetPage(ctx, url); !errors.Is(err, f.err) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	// counter bumped even though the fetch failed; nothing cached
	if n, _ := c.AccessCount(ctx, url); n != 1 {
		t.Fatalf("AccessCount after failed fetch: %d", n)
	}
	if _, ok, _ := mem.Get(ctx, "cache:"+url); ok {
		t.Fatalf("failed fetch left a cache entry")
	}
	if hooks.fetchE != 1 || hooks.misses != 1 {
		t.Fatalf("hooks: fetchErrors=%d misses=%d", hooks.fetchE, hooks.misses)
	}
}

// mapFront is a trivial local.Store for tests.
type mapFront struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMapFront() *mapFront { return &mapFront{m: make(map[string][]byte)} }

func (s *mapFront) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.m[key]
	return b, ok
}
func (s *mapFront) Set(key string, value []byte, _ time.Duration) {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
}
func (s *mapFront) Del(key string) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}
func (s *mapFront) Close() error { return nil }

func TestLocalFrontServesHitsAndStillCounts(t *testing.T) {
	ctx := context.Background()
	hooks := &recordingHooks{}
	front := newMapFront()
	c, _, f := newTestPageCache(t, func(cfg *Config) {
		cfg.Local = front
		cfg.Hooks = hooks
	})
	url := "http://example.com/local"

	first, err := c.GetPage(ctx, url)
	if err != nil {
		t.Fatalf("GetPage #1: %v", err)
	}
	second, err := c.GetPage(ctx, url)
	if err != nil {
		t.Fatalf("GetPage #2: %v", err)
	}
	if second != first || f.count() != 1 {
		t.Fatalf("local front did not serve the hit: fetches=%d", f.count())
	}
	if len(hooks.hits) != 1 || !hooks.hits[0] {
		t.Fatalf("expected one local hit, got %v", hooks.hits)
	}
	// access counting is shared-store state, local hits included
	if n, _ := c.AccessCount(ctx, url); n != 2 {
		t.Fatalf("AccessCount with local front: %d", n)
	}
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("New without store should fail")
	}
}
