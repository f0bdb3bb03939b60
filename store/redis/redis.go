package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	st "github.com/unkn0wn-root/tracecache/store"
)

var ErrNilClient = errors.New("redis store: nil client")

// Redis adapts a go-redis client to the store.Store contract.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ st.Store = (*Redis)(nil)

type Config struct {
	Client      goredis.UniversalClient
	CloseClient bool // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

func (s *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport/server error
	}
	return b, true, nil
}

func (s *Redis) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *Redis) SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 0 // treat non-positive TTLs as "no expiry" per store contract
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *Redis) Incr(ctx context.Context, key string) (int64, error) {
	return s.rdb.Incr(ctx, key).Result()
}

func (s *Redis) RPush(ctx context.Context, key string, value []byte) error {
	return s.rdb.RPush(ctx, key, value).Err()
}

func (s *Redis) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	vals, err := s.rdb.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

func (s *Redis) FlushAll(ctx context.Context) error {
	return s.rdb.FlushAll(ctx).Err()
}

// Close releases the underlying redis client only when this store owns it.
// Safe to call multiple times; repeated calls become no-ops.
func (s *Redis) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
