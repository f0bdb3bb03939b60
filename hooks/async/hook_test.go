package asynchook

import (
	"errors"
	"sync"
	"testing"
)

type recording struct {
	mu     sync.Mutex
	events []string
}

func (r *recording) add(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recording) PageHit(string, bool)      { r.add("hit") }
func (r *recording) PageMiss(string)           { r.add("miss") }
func (r *recording) FetchError(string, error)  { r.add("fetch_error") }
func (r *recording) DecodeError(string, error) { r.add("decode_error") }

func TestDeliversBeforeClose(t *testing.T) {
	rec := &recording{}
	h := New(rec, 1, 16)

	h.PageMiss("u")
	h.PageHit("u", true)
	h.FetchError("u", errors.New("x"))
	h.Close() // drains the queue

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.events) != 3 {
		t.Fatalf("expected 3 events, got %v", rec.events)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	h := New(&recording{}, 2, 4)
	h.Close()
	h.Close() // must not panic
}
