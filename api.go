package tracecache

import (
	"context"

	"github.com/unkn0wn-root/tracecache/codec"
	st "github.com/unkn0wn-root/tracecache/store"
)

// Cache is the typed caching API. Keys are generated, never caller-chosen;
// retrieval is by the key returned from Store.
type Cache interface {
	// Store encodes data and writes it under a fresh random key, returning
	// the key. Supported kinds: string, []byte, signed/unsigned integers,
	// float32/float64. Anything else yields ErrUnsupportedValue.
	Store(ctx context.Context, data any) (key string, err error)

	// Get returns the raw bytes for key; (nil, false, nil) on a missing key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Typed getters. A missing key is (zero, false, nil) and the decoder
	// never runs; a present but undecodable value returns a *DecodeError.
	GetString(ctx context.Context, key string) (string, bool, error)
	GetInt(ctx context.Context, key string) (int64, bool, error)
	GetFloat(ctx context.Context, key string) (float64, bool, error)

	// OpName reports the operation name the cache's Store is instrumented
	// under; pass it to Replay.
	OpName() string

	// Flush clears the entire store: values, counters, history, pages.
	Flush(ctx context.Context) error

	Close(ctx context.Context) error
}

// Options tune the cache. Only Store is required.
type Options struct {
	// Required
	Store st.Store

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// StoreOpName is the identifier the instrumented Store operation records
	// under; "" => "Cache.Store". Counter and history keys derive from it.
	StoreOpName string

	// DisableInstrumentation turns off counting and history for Store.
	DisableInstrumentation bool

	// FlushOnInit flushes the store inside New, starting from a clean slate.
	FlushOnInit bool
}

func New(opts Options) (Cache, error) {
	return newCache(opts)
}

// GetAs reads key and decodes it with cod. Miss => (zero, false, nil) with
// the decoder never invoked; decode failure => *DecodeError.
func GetAs[V any](ctx context.Context, c Cache, key string, cod codec.Codec[V]) (V, bool, error) {
	var zero V
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := cod.Decode(raw)
	if err != nil {
		return zero, false, &DecodeError{Key: key, Err: err}
	}
	return v, true, nil
}
