// Package sloghooks emits tracecache hook events to a slog.Logger, with
// sampling for the hot hit/miss events.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/tracecache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional URL/key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ tracecache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(s string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(s)
	}
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) PageHit(url string, local bool) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("tracecache.page_hit",
		"url", h.redact(url),
		"local", local)
}

func (h *Hooks) PageMiss(url string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("tracecache.page_miss",
		"url", h.redact(url))
}

func (h *Hooks) FetchError(url string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("tracecache.fetch_error",
		"url", h.redact(url),
		"err", err)
}

func (h *Hooks) DecodeError(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("tracecache.decode_error",
		"key", h.redact(key),
		"err", err)
}
