package bigcache

import (
	"time"

	bc "github.com/allegro/bigcache/v3"

	lc "github.com/unkn0wn-root/tracecache/local"
)

// Front adapts BigCache to local.Store. BigCache has no per-entry TTL; the
// global LifeWindow is the expiry for every entry, so configure it to the
// page cache TTL.
type Front struct {
	c *bc.BigCache
}

var _ lc.Store = (*Front)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Front, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Front{c: c}, nil
}

func (f *Front) Get(key string) ([]byte, bool) {
	b, err := f.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (f *Front) Set(key string, value []byte, _ time.Duration) {
	_ = f.c.Set(key, value) // expiry is the global LifeWindow
}

func (f *Front) Del(key string) {
	_ = f.c.Delete(key)
}

func (f *Front) Close() error {
	return f.c.Close()
}
