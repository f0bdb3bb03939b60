// Package memory provides an in-process store.Store for tests and
// single-process deployments. Semantics follow Redis where they matter:
// lazy TTL expiry on read, Incr counting from zero on a missing key, and
// LRange with negative tail indices.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	st "github.com/unkn0wn-root/tracecache/store"
)

type entry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type Memory struct {
	mu    sync.Mutex
	vals  map[string]entry
	lists map[string][][]byte
}

var _ st.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		vals:  make(map[string]entry),
		lists: make(map[string][][]byte),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.vals[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(m.vals, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.vals[key] = entry{v: value}
	m.mu.Unlock()
	return nil
}

func (m *Memory) SetEx(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.vals[key] = entry{v: value, exp: exp}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Incr(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if e, ok := m.vals[key]; ok && (e.exp.IsZero() || time.Now().Before(e.exp)) {
		parsed, err := strconv.ParseInt(string(e.v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("memory store: value at %q is not an integer", key)
		}
		n = parsed
	}
	n++
	m.vals[key] = entry{v: strconv.AppendInt(nil, n, 10)}
	return n, nil
}

func (m *Memory) RPush(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.lists[key] = append(m.lists[key], value)
	m.mu.Unlock()
	return nil
}

func (m *Memory) LRange(_ context.Context, key string, start, stop int64) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[key]
	n := int64(len(l))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return nil, nil
	}
	out := make([][]byte, 0, stop-start+1)
	for _, v := range l[start : stop+1] {
		out = append(out, v)
	}
	return out, nil
}

func (m *Memory) FlushAll(_ context.Context) error {
	m.mu.Lock()
	m.vals = make(map[string]entry)
	m.lists = make(map[string][][]byte)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close(_ context.Context) error { return nil }
