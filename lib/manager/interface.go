package manager

import (
	"context"
	"time"

	"github.com/ValentinKolb/rKV/lib/codec"
	"github.com/ValentinKolb/rKV/lib/lockmgr"
	"github.com/ValentinKolb/rKV/lib/store"
	"go.uber.org/zap"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IManager is the interface for orchestrating conditional key-value
// operations against a remote backend. All keys are scoped to the
// namespace the manager was constructed with.
//
// Write operations return a *Error (nil on success) classifying the
// failure; read operations return the requested data along with an error.
type IManager interface {
	// Add stores a value under a key that must not exist yet.
	// Fails with KindKeyExists if the key is already present.
	Add(ctx context.Context, key string, value any, opts ...WriteOption) error
	// Update stores a value under a key that must already exist.
	// Fails with KindKeyNotExist if the key is absent.
	Update(ctx context.Context, key string, value any, opts ...WriteOption) error
	// Upsert stores a value regardless of the key's existence.
	Upsert(ctx context.Context, key string, value any, opts ...WriteOption) error
	// Delete removes a key. It returns true if a key was removed and
	// false if it was absent.
	Delete(ctx context.Context, key string, opts ...WriteOption) (removed bool, err error)
	// Get returns the decoded value for a key. The boolean return value is
	// the absence sentinel: it is false when the key does not exist, which
	// is distinct from a stored null value (nil, true, nil).
	Get(ctx context.Context, key string) (value any, loaded bool, err error)
	// Has returns whether a key exists.
	Has(ctx context.Context, key string) (loaded bool, err error)
	// ClearNamespace removes every entry of this manager's namespace.
	// It provides no isolation from concurrent mutators.
	ClearNamespace(ctx context.Context) error
	// ClearAll removes every entry in the backend across all namespaces.
	// It provides no isolation from concurrent mutators.
	ClearAll(ctx context.Context) error
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// Config holds the construction parameters shared by both manager shapes.
type Config struct {
	// Namespace scopes all keys handled by the manager. Required, must not
	// contain the separator character.
	Namespace string
	// DefaultExpiry is applied to every written entry inside the write
	// batch. Zero means entries never expire.
	DefaultExpiry time.Duration
	// MaxRetries bounds the retries of transient backend failures per
	// operation (maxRetries=5 means up to 6 attempts).
	MaxRetries int
	// Logger is optional; nil disables logging.
	Logger *zap.Logger
	// Codec is optional; nil selects the default tagged JSON codec.
	Codec codec.IValueCodec
}

// LockConfig holds the additional parameters of the locking manager shape.
type LockConfig struct {
	// DefaultTTL bounds the hold duration of per-key locks when an
	// operation does not override it. Required.
	DefaultTTL time.Duration
}

// WriteOption customizes a single mutating operation.
type WriteOption func(*writeOptions)

type writeOptions struct {
	lockTTL time.Duration
}

// WithLockTTL overrides the default lock ttl for one operation.
// It has no effect on a manager constructed without locking.
func WithLockTTL(ttl time.Duration) WriteOption {
	return func(o *writeOptions) {
		o.lockTTL = ttl
	}
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// NewManager creates a manager without per-key locking. Mutations race
// freely; the conditional-write semantics of the backend are the only
// serialization.
func NewManager(st store.IStore, conf Config) (IManager, error) {
	return newManager(st, conf, noGuard{})
}

// NewLockedManager creates a manager that serializes every mutation per
// key through the given lock provider, so that at most one mutation per
// logical key is in flight cluster-wide at a time.
func NewLockedManager(st store.IStore, locks lockmgr.ILockManager, conf Config, lockConf LockConfig) (IManager, error) {
	if locks == nil {
		return nil, newError(KindLockInternal, "lock manager must not be nil")
	}
	if lockConf.DefaultTTL <= 0 {
		return nil, newError(KindLockInternal, "default lock ttl must be positive")
	}
	g := &lockGuard{
		locks:      locks,
		defaultTTL: lockConf.DefaultTTL,
	}
	m, err := newManager(st, conf, g)
	if err != nil {
		return nil, err
	}
	g.logger = m.logger
	return m, nil
}

func newManager(st store.IStore, conf Config, g guard) (*managerImpl, error) {
	if st == nil {
		return nil, newError(KindStoreInternal, "store must not be nil")
	}
	if conf.MaxRetries < 0 {
		return nil, newError(KindUnknown, "max retries must not be negative")
	}

	prefix, err := newPrefixCodec(conf.Namespace)
	if err != nil {
		return nil, err
	}

	c := conf.Codec
	if c == nil {
		c = codec.NewTaggedJSONCodec()
	}
	l := conf.Logger
	if l == nil {
		l = zap.NewNop()
	}

	return &managerImpl{
		store:         st,
		codec:         c,
		prefix:        prefix,
		guard:         g,
		logger:        l,
		defaultExpiry: conf.DefaultExpiry,
		maxRetries:    conf.MaxRetries,
	}, nil
}
