package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/ValentinKolb/rKV/lib/codec"
	"github.com/ValentinKolb/rKV/lib/store"
	"github.com/VictoriaMetrics/metrics"
	"go.uber.org/zap"
)

type managerImpl struct {
	store         store.IStore
	codec         codec.IValueCodec
	prefix        prefixCodec
	guard         guard
	logger        *zap.Logger
	defaultExpiry time.Duration
	maxRetries    int
}

// --------------------------------------------------------------------------
// Interface Methods - Mutations (docu see manager/interface.go)
// --------------------------------------------------------------------------

func (m *managerImpl) Add(ctx context.Context, key string, value any, opts ...WriteOption) error {
	return m.write(ctx, "add", key, value, store.ModeNX, opts)
}

func (m *managerImpl) Update(ctx context.Context, key string, value any, opts ...WriteOption) error {
	return m.write(ctx, "update", key, value, store.ModeXX, opts)
}

func (m *managerImpl) Upsert(ctx context.Context, key string, value any, opts ...WriteOption) error {
	return m.write(ctx, "upsert", key, value, store.ModeAlways, opts)
}

// write is the shared path of Add, Update and Upsert. The three operations
// only differ in the SetMode and in how a non-applied result is classified.
func (m *managerImpl) write(ctx context.Context, op string, key string, value any, mode store.SetMode, opts []WriteOption) error {
	m.countOp(op)

	prefixedKey, err := m.prefix.concat(key)
	if err != nil {
		return err
	}

	encoded, err := m.codec.Serialize(value)
	if err != nil {
		return wrapError(KindUnknown, fmt.Sprintf("failed to encode value for key %q", key), err)
	}

	return m.guard.withLock(ctx, lockResource(prefixedKey), lockTTLOf(opts), func() error {
		res, attempts, err := retryN(m.maxRetries, func() (store.SetResult, error) {
			return m.store.SetWithExpiry(ctx, prefixedKey, encoded, mode, m.defaultExpiry)
		})
		m.countRetries(op, attempts-1)

		if err != nil {
			return wrapError(KindStoreInternal,
				fmt.Sprintf("conditional set of key %q failed after %d attempts", key, attempts), err)
		}

		// Domain conflicts are terminal, never retried
		if !res.Applied {
			switch mode {
			case store.ModeNX:
				return newError(KindKeyExists, fmt.Sprintf("key %q already exists", key))
			case store.ModeXX:
				return newError(KindKeyNotExist, fmt.Sprintf("key %q does not exist", key))
			}
		}

		// The batch executed but only partially applied
		if m.defaultExpiry > 0 && !res.ExpiryApplied {
			return newError(KindStoreInternal, fmt.Sprintf("expiry was not applied to key %q", key))
		}

		m.logger.Debug("wrote key", zap.String("op", op), zap.String("key", prefixedKey))
		return nil
	})
}

func (m *managerImpl) Delete(ctx context.Context, key string, opts ...WriteOption) (bool, error) {
	m.countOp("delete")

	prefixedKey, err := m.prefix.concat(key)
	if err != nil {
		return false, err
	}

	var removed int64
	err = m.guard.withLock(ctx, lockResource(prefixedKey), lockTTLOf(opts), func() error {
		n, attempts, err := retryN(m.maxRetries, func() (int64, error) {
			return m.store.Delete(ctx, prefixedKey)
		})
		m.countRetries("delete", attempts-1)

		if err != nil {
			return wrapError(KindStoreInternal,
				fmt.Sprintf("delete of key %q failed after %d attempts", key, attempts), err)
		}
		removed = n
		return nil
	})
	if err != nil {
		return false, err
	}

	return removed > 0, nil
}

// --------------------------------------------------------------------------
// Interface Methods - Reads (never locked)
// --------------------------------------------------------------------------

func (m *managerImpl) Get(ctx context.Context, key string) (any, bool, error) {
	m.countOp("get")

	prefixedKey, err := m.prefix.concat(key)
	if err != nil {
		return nil, false, err
	}

	type getResult struct {
		value  []byte
		loaded bool
	}
	res, attempts, err := retryN(m.maxRetries, func() (getResult, error) {
		value, loaded, err := m.store.Get(ctx, prefixedKey)
		return getResult{value: value, loaded: loaded}, err
	})
	m.countRetries("get", attempts-1)

	if err != nil {
		return nil, false, wrapError(KindStoreInternal,
			fmt.Sprintf("get of key %q failed after %d attempts", key, attempts), err)
	}
	if !res.loaded {
		return nil, false, nil
	}

	value, err := m.codec.Parse(res.value)
	if err != nil {
		return nil, false, wrapError(KindUnknown, fmt.Sprintf("failed to decode value of key %q", key), err)
	}
	return value, true, nil
}

func (m *managerImpl) Has(ctx context.Context, key string) (bool, error) {
	m.countOp("has")

	prefixedKey, err := m.prefix.concat(key)
	if err != nil {
		return false, err
	}

	loaded, attempts, err := retryN(m.maxRetries, func() (bool, error) {
		return m.store.Has(ctx, prefixedKey)
	})
	m.countRetries("has", attempts-1)

	if err != nil {
		return false, wrapError(KindStoreInternal,
			fmt.Sprintf("existence check of key %q failed after %d attempts", key, attempts), err)
	}
	return loaded, nil
}

// --------------------------------------------------------------------------
// Interface Methods - Maintenance (never locked)
// --------------------------------------------------------------------------

func (m *managerImpl) ClearNamespace(ctx context.Context) error {
	m.countOp("clear_namespace")
	m.logger.Info("clearing namespace", zap.String("namespace", m.prefix.namespace))

	_, attempts, err := retryN(m.maxRetries, func() (struct{}, error) {
		return struct{}{}, m.store.FlushPrefix(ctx, m.prefix.wirePrefix())
	})
	m.countRetries("clear_namespace", attempts-1)

	if err != nil {
		return wrapError(KindStoreInternal,
			fmt.Sprintf("flush of namespace %q failed after %d attempts", m.prefix.namespace, attempts), err)
	}
	return nil
}

func (m *managerImpl) ClearAll(ctx context.Context) error {
	m.countOp("clear_all")
	m.logger.Info("clearing entire backend")

	_, attempts, err := retryN(m.maxRetries, func() (struct{}, error) {
		return struct{}{}, m.store.FlushAll(ctx)
	})
	m.countRetries("clear_all", attempts-1)

	if err != nil {
		return wrapError(KindStoreInternal,
			fmt.Sprintf("backend flush failed after %d attempts", attempts), err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// lockTTLOf applies the write options and returns the requested lock ttl
// (zero selects the guard's default)
func lockTTLOf(opts []WriteOption) time.Duration {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o.lockTTL
}

func (m *managerImpl) countOp(op string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`rkv_manager_operations_total{op=%q,namespace=%q}`, op, m.prefix.namespace)).Inc()
}

func (m *managerImpl) countRetries(op string, retries int) {
	if retries <= 0 {
		return
	}
	m.logger.Debug("retried transient backend failure", zap.String("op", op), zap.Int("retries", retries))
	metrics.GetOrCreateCounter(fmt.Sprintf(`rkv_manager_retries_total{op=%q,namespace=%q}`, op, m.prefix.namespace)).Add(retries)
}
