// Package pagecache wraps an external URL fetch with access counting and
// TTL-bounded content caching in the shared store.
//
// Keys:
//
//	cache:<url>  - content, expires TTL after the write that created it
//	count:<url>  - access counter, incremented on every GetPage, never expires
//
// Concurrent misses for the same URL may both fetch and both write the
// entry; last write wins. There is deliberately no single-flight.
package pagecache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/unkn0wn-root/tracecache"
	lc "github.com/unkn0wn-root/tracecache/local"
	st "github.com/unkn0wn-root/tracecache/store"
)

// DefaultTTL bounds how long fetched content is served without re-fetching.
const DefaultTTL = 10 * time.Second

const (
	cachePrefix = "cache:"
	countPrefix = "count:"
)

// FetchFunc obtains fresh content for a URL. Errors propagate to the
// GetPage caller unchanged; nothing is cached on failure.
type FetchFunc func(ctx context.Context, url string) (string, error)

// Config tunes the page cache. Only Store is required.
type Config struct {
	// Required
	Store st.Store

	Fetch  FetchFunc         // nil => HTTPFetcher(nil)
	TTL    time.Duration     // 0 => DefaultTTL
	Local  lc.Store          // optional in-process front for hot content
	Logger tracecache.Logger // nil => NopLogger
	Hooks  tracecache.Hooks  // nil => NopHooks
}

type Cache struct {
	store st.Store
	fetch FetchFunc
	ttl   time.Duration
	local lc.Store
	log   tracecache.Logger
	hooks tracecache.Hooks
}

func New(cfg Config) (*Cache, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("pagecache: store is required")
	}
	c := &Cache{
		store: cfg.Store,
		fetch: cfg.Fetch,
		local: cfg.Local,
	}
	if c.fetch == nil {
		c.fetch = HTTPFetcher(nil)
	}
	c.ttl = cfg.TTL
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	c.log = cfg.Logger
	if c.log == nil {
		c.log = tracecache.NopLogger{}
	}
	c.hooks = cfg.Hooks
	if c.hooks == nil {
		c.hooks = tracecache.NopHooks{}
	}
	return c, nil
}

// GetPage returns the content for url, serving from cache while the entry's
// TTL runs and fetching otherwise. The access counter is incremented on
// every call, hit or miss; a cache hit does not reset the TTL.
func (c *Cache) GetPage(ctx context.Context, url string) (string, error) {
	if _, err := c.store.Incr(ctx, countPrefix+url); err != nil {
		return "", err
	}

	key := cachePrefix + url

	if c.local != nil {
		if b, ok := c.local.Get(key); ok {
			c.hooks.PageHit(url, true)
			return string(b), nil
		}
	}

	b, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if ok {
		c.hooks.PageHit(url, false)
		if c.local != nil {
			c.local.Set(key, b, c.ttl)
		}
		return string(b), nil
	}

	c.hooks.PageMiss(url)
	content, err := c.fetch(ctx, url)
	if err != nil {
		c.hooks.FetchError(url, err)
		return "", err
	}

	// best-effort write: the fetched content is valid either way
	if err := c.store.SetEx(ctx, key, []byte(content), c.ttl); err != nil {
		c.log.Warn("page cache write failed", tracecache.Fields{"url": url, "err": err})
		return content, nil
	}
	if c.local != nil {
		c.local.Set(key, []byte(content), c.ttl)
	}
	c.log.Debug("page cached", tracecache.Fields{"url": url, "ttl": c.ttl})
	return content, nil
}

// AccessCount reads count:<url>; a never-accessed URL reads as 0.
func (c *Cache) AccessCount(ctx context.Context, url string) (int64, error) {
	raw, ok, err := c.store.Get(ctx, countPrefix+url)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("pagecache: counter for %s: %w", url, err)
	}
	return n, nil
}

// Close releases the local front, if any. The shared store is owned by the
// caller and left open.
func (c *Cache) Close() error {
	if c.local != nil {
		return c.local.Close()
	}
	return nil
}

// HTTPFetcher returns a FetchFunc issuing a plain GET with client.
// A nil client uses http.DefaultClient. Non-2xx responses are errors.
func HTTPFetcher(client *http.Client) FetchFunc {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, url string) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", fmt.Errorf("pagecache: fetch %s: unexpected status %s", url, resp.Status)
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
