package memory

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestIncrSemantics(t *testing.T) {
	ctx := context.Background()
	m := New()

	n, err := m.Incr(ctx, "c")
	if err != nil || n != 1 {
		t.Fatalf("first Incr: n=%d err=%v", n, err)
	}
	n, err = m.Incr(ctx, "c")
	if err != nil || n != 2 {
		t.Fatalf("second Incr: n=%d err=%v", n, err)
	}
	if b, ok, _ := m.Get(ctx, "c"); !ok || string(b) != "2" {
		t.Fatalf("counter bytes: ok=%v b=%q", ok, b)
	}

	if err := m.Set(ctx, "s", []byte("text")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := m.Incr(ctx, "s"); err == nil {
		t.Fatalf("Incr on non-integer should fail")
	}
}

func TestSetExExpiry(t *testing.T) {
	ctx := context.Background()
	m := New()

	if err := m.SetEx(ctx, "k", []byte("v"), 30*time.Millisecond); err != nil {
		t.Fatalf("SetEx: %v", err)
	}
	if b, ok, _ := m.Get(ctx, "k"); !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("Get before expiry: ok=%v b=%q", ok, b)
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatalf("entry survived its TTL")
	}

	// ttl <= 0 means no expiry
	if err := m.SetEx(ctx, "p", []byte("v"), 0); err != nil {
		t.Fatalf("SetEx: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, ok, _ := m.Get(ctx, "p"); !ok {
		t.Fatalf("no-expiry entry vanished")
	}
}

func TestLRange(t *testing.T) {
	ctx := context.Background()
	m := New()

	t.Run("missing_key", func(t *testing.T) {
		l, err := m.LRange(ctx, "none", 0, -1)
		if err != nil || len(l) != 0 {
			t.Fatalf("missing key: l=%v err=%v", l, err)
		}
	})

	for _, v := range []string{"a", "b", "c", "d"} {
		if err := m.RPush(ctx, "l", []byte(v)); err != nil {
			t.Fatalf("RPush: %v", err)
		}
	}

	t.Run("full", func(t *testing.T) {
		l, _ := m.LRange(ctx, "l", 0, -1)
		if len(l) != 4 || string(l[0]) != "a" || string(l[3]) != "d" {
			t.Fatalf("full range: %q", l)
		}
	})

	t.Run("negative_indices", func(t *testing.T) {
		l, _ := m.LRange(ctx, "l", -2, -1)
		if len(l) != 2 || string(l[0]) != "c" || string(l[1]) != "d" {
			t.Fatalf("tail range: %q", l)
		}
	})

	t.Run("clamped", func(t *testing.T) {
		l, _ := m.LRange(ctx, "l", 2, 99)
		if len(l) != 2 || string(l[0]) != "c" {
			t.Fatalf("clamped range: %q", l)
		}
	})

	t.Run("inverted", func(t *testing.T) {
		if l, _ := m.LRange(ctx, "l", 3, 1); len(l) != 0 {
			t.Fatalf("inverted range: %q", l)
		}
	})
}

func TestFlushAll(t *testing.T) {
	ctx := context.Background()
	m := New()

	_ = m.Set(ctx, "k", []byte("v"))
	_ = m.RPush(ctx, "l", []byte("e"))
	_, _ = m.Incr(ctx, "c")

	if err := m.FlushAll(ctx); err != nil {
		t.Fatalf("FlushAll: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatalf("value survived flush")
	}
	if l, _ := m.LRange(ctx, "l", 0, -1); len(l) != 0 {
		t.Fatalf("list survived flush")
	}
	if n, _ := m.Incr(ctx, "c"); n != 1 {
		t.Fatalf("counter survived flush: %d", n)
	}
}
