// Package asynchook decouples hook delivery from the caller's hot path with
// a bounded queue. Events are dropped rather than blocking when the queue is
// full.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{HitEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := tracecache.New(tracecache.Options{
//	    Store: st,
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/tracecache"
)

type Hooks struct {
	inner tracecache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ tracecache.Hooks = (*Hooks)(nil)

func New(inner tracecache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) PageHit(url string, local bool) { h.try(func() { h.inner.PageHit(url, local) }) }
func (h *Hooks) PageMiss(url string)            { h.try(func() { h.inner.PageMiss(url) }) }
func (h *Hooks) FetchError(url string, err error) {
	h.try(func() { h.inner.FetchError(url, err) })
}
func (h *Hooks) DecodeError(key string, err error) {
	h.try(func() { h.inner.DecodeError(key, err) })
}
