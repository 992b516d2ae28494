package rstore

import (
	"context"
	"errors"
	"time"

	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/redis/go-redis/v9"
)

// number of keys fetched per SCAN iteration and deleted per DEL batch
const flushBatchSize = 128

type storeImpl struct {
	client redis.UniversalClient
}

// NewRedisStore creates a new store backed by a Redis server or cluster.
// The connection is established lazily by the client; Ping can be used to
// verify connectivity at startup.
func NewRedisStore(conf *Config) store.IStore {
	if conf == nil {
		conf = DefaultConfig()
	}
	return &storeImpl{
		client: createClient(conf),
	}
}

// Ping verifies the connection to the backend.
func Ping(ctx context.Context, s store.IStore) error {
	impl, ok := s.(*storeImpl)
	if !ok {
		return store.NewError(store.RetCInvalidOperation, "store is not a redis store")
	}
	if err := impl.client.Ping(ctx).Err(); err != nil {
		return store.WrapError(store.RetCInternalError, "failed to ping redis backend", err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) SetWithExpiry(ctx context.Context, key string, value []byte, mode store.SetMode, ttl time.Duration) (store.SetResult, error) {
	pipe := s.client.TxPipeline()

	// The set itself never carries the ttl so that the expire step is
	// reported separately in the batch outcome.
	var setNXCmd, setXXCmd *redis.BoolCmd
	switch mode {
	case store.ModeNX:
		setNXCmd = pipe.SetNX(ctx, key, value, 0)
	case store.ModeXX:
		setXXCmd = pipe.SetXX(ctx, key, value, 0)
	case store.ModeAlways:
		pipe.Set(ctx, key, value, 0)
	default:
		return store.SetResult{}, store.NewError(store.RetCInvalidOperation, "unknown set mode")
	}

	var expireCmd *redis.BoolCmd
	if ttl > 0 {
		expireCmd = pipe.Expire(ctx, key, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return store.SetResult{}, store.WrapError(store.RetCInternalError, "failed to execute conditional set batch", err)
	}

	res := store.SetResult{Applied: true}
	switch {
	case setNXCmd != nil:
		res.Applied = setNXCmd.Val()
	case setXXCmd != nil:
		res.Applied = setXXCmd.Val()
	}
	if expireCmd != nil {
		res.ExpiryApplied = expireCmd.Val()
	}

	return res, nil
}

func (s *storeImpl) Delete(ctx context.Context, key string) (int64, error) {
	removed, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return 0, store.WrapError(store.RetCInternalError, "failed to delete key", err)
	}
	return removed, nil
}

func (s *storeImpl) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, store.WrapError(store.RetCInternalError, "failed to get key", err)
	}
	return value, true, nil
}

func (s *storeImpl) Has(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, store.WrapError(store.RetCInternalError, "failed to check key existence", err)
	}
	return count > 0, nil
}

func (s *storeImpl) FlushPrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", flushBatchSize).Iterator()

	batch := make([]string, 0, flushBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return store.WrapError(store.RetCInternalError, "failed to delete scanned keys", err)
		}
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == flushBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return store.WrapError(store.RetCInternalError, "failed to scan prefix", err)
	}

	return flush()
}

func (s *storeImpl) FlushAll(ctx context.Context) error {
	if err := s.client.FlushAll(ctx).Err(); err != nil {
		return store.WrapError(store.RetCInternalError, "failed to flush backend", err)
	}
	return nil
}

func (s *storeImpl) Close() error {
	return s.client.Close()
}
