package tracecache

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/tracecache/codec"
	st "github.com/unkn0wn-root/tracecache/store"
)

const defaultStoreOpName = "Cache.Store"

type cache struct {
	store   st.Store
	log     Logger
	hooks   Hooks
	opName  string
	storeOp Op
}

func newCache(opts Options) (*cache, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("tracecache: store is required")
	}

	c := &cache{store: opts.Store}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.opName = coalesce(opts.StoreOpName, defaultStoreOpName)

	op := Op(c.doStore)
	if !opts.DisableInstrumentation {
		// counter outermost: the increment is observed before the input
		// append, and fires even when the store write fails
		op = Chain(op,
			CountCalls(c.store, c.opName),
			CallHistory(c.store, c.opName),
		)
	}
	c.storeOp = op

	if opts.FlushOnInit {
		if err := c.store.FlushAll(context.Background()); err != nil {
			return nil, fmt.Errorf("tracecache: initial flush: %w", err)
		}
	}
	return c, nil
}

func (c *cache) OpName() string { return c.opName }

func (c *cache) Store(ctx context.Context, data any) (string, error) {
	out, err := c.storeOp(ctx, data)
	if err != nil {
		return "", err
	}
	key, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("tracecache: store op returned %T, want string", out)
	}
	return key, nil
}

// doStore is the un-instrumented store operation.
func (c *cache) doStore(ctx context.Context, args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("tracecache: store expects 1 argument, got %d", len(args))
	}
	raw, err := encodeValue(args[0])
	if err != nil {
		return nil, err
	}
	key := uuid.NewString()
	if err := c.store.Set(ctx, key, raw); err != nil {
		return nil, err
	}
	c.log.Debug("stored value", Fields{"key": key, "bytes": len(raw)})
	return key, nil
}

func (c *cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.store.Get(ctx, key)
}

func (c *cache) GetString(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	s, _ := codec.String{}.Decode(raw) // cannot fail
	return s, true, nil
}

func (c *cache) GetInt(ctx context.Context, key string) (int64, bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := codec.Int64{}.Decode(raw)
	if err != nil {
		c.hooks.DecodeError(key, err)
		return 0, false, &DecodeError{Key: key, Err: err}
	}
	return n, true, nil
}

func (c *cache) GetFloat(ctx context.Context, key string) (float64, bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	f, err := codec.Float64{}.Decode(raw)
	if err != nil {
		c.hooks.DecodeError(key, err)
		return 0, false, &DecodeError{Key: key, Err: err}
	}
	return f, true, nil
}

func (c *cache) Flush(ctx context.Context) error {
	if err := c.store.FlushAll(ctx); err != nil {
		return err
	}
	c.log.Debug("flushed store", nil)
	return nil
}

func (c *cache) Close(ctx context.Context) error {
	if c.store != nil {
		return c.store.Close(ctx)
	}
	return nil
}
