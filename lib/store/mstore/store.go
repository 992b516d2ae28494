package mstore

import (
	"context"
	"strings"
	"time"

	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
)

// entry stores a value with an optional absolute expiry timestamp
type entry struct {
	value    []byte
	expireAt time.Time // zero value means no expiry
}

// expired returns whether the entry is expired at the given time
func (e entry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && !now.Before(e.expireAt)
}

type storeImpl struct {
	data *xsync.MapOf[string, entry]
}

// NewMemoryStore creates a new in-memory store instance.
// This store implementation is not remote and only works inside a single
// process. Expired entries are removed lazily on access.
func NewMemoryStore() store.IStore {
	return &storeImpl{
		data: xsync.NewMapOf[string, entry](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) SetWithExpiry(_ context.Context, key string, value []byte, mode store.SetMode, ttl time.Duration) (store.SetResult, error) {
	now := time.Now()
	applied := false

	s.data.Compute(key, func(old entry, loaded bool) (entry, bool) {
		exists := loaded && !old.expired(now)

		switch mode {
		case store.ModeNX:
			if exists {
				return old, false
			}
		case store.ModeXX:
			if !exists {
				// delete=true drops a stale expired entry and is a
				// no-op when the key is not present at all
				return old, true
			}
		}

		applied = true
		e := entry{value: cloneBytes(value)}
		if ttl > 0 {
			e.expireAt = now.Add(ttl)
		}
		return e, false
	})

	return store.SetResult{
		Applied:       applied,
		ExpiryApplied: applied && ttl > 0,
	}, nil
}

func (s *storeImpl) Delete(_ context.Context, key string) (int64, error) {
	e, loaded := s.data.LoadAndDelete(key)
	if !loaded || e.expired(time.Now()) {
		return 0, nil
	}
	return 1, nil
}

func (s *storeImpl) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, loaded := s.data.Load(key)
	if !loaded {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		s.data.Delete(key)
		return nil, false, nil
	}
	return cloneBytes(e.value), true, nil
}

func (s *storeImpl) Has(ctx context.Context, key string) (bool, error) {
	_, loaded, err := s.Get(ctx, key)
	return loaded, err
}

func (s *storeImpl) FlushPrefix(_ context.Context, prefix string) error {
	var keys []string
	s.data.Range(func(key string, _ entry) bool {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return true
	})
	for _, key := range keys {
		s.data.Delete(key)
	}
	return nil
}

func (s *storeImpl) FlushAll(_ context.Context) error {
	s.data.Clear()
	return nil
}

func (s *storeImpl) Close() error {
	return nil
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// cloneBytes copies a byte slice so callers cannot mutate stored state
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
