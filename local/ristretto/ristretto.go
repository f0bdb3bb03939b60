package ristretto

import (
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	lc "github.com/unkn0wn-root/tracecache/local"
)

// Front adapts Ristretto to local.Store with per-entry TTL. Cost is the
// value length, so MaxCost is roughly a byte budget.
type Front struct {
	c *rc.Cache
}

var _ lc.Store = (*Front)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Front, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto front: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Front{c: c}, nil
}

func (f *Front) Get(key string) ([]byte, bool) {
	v, ok := f.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		f.c.Del(key)
		return nil, false
	}
	return b, true
}

func (f *Front) Set(key string, value []byte, ttl time.Duration) {
	f.c.SetWithTTL(key, value, int64(len(value)), ttl)
}

func (f *Front) Del(key string) {
	f.c.Del(key)
}

func (f *Front) Close() error {
	f.c.Wait()
	f.c.Close()
	return nil
}

// Metrics exposes Ristretto metrics when enabled in Config.
func (f *Front) Metrics() *rc.Metrics { return f.c.Metrics }
