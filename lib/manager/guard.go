package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/ValentinKolb/rKV/lib/lockmgr"
	"go.uber.org/zap"
)

// guard serializes a mutation against concurrent mutations of the same
// resource. The non-locking manager uses noGuard, the locking manager
// lockGuard; call sites never branch on a nil lock field.
type guard interface {
	// withLock runs fn while holding the lock for resource. A ttl of zero
	// selects the configured default ttl.
	withLock(ctx context.Context, resource string, ttl time.Duration, fn func() error) error
}

// --------------------------------------------------------------------------
// No-op guard (locking disabled)
// --------------------------------------------------------------------------

type noGuard struct{}

func (noGuard) withLock(_ context.Context, _ string, _ time.Duration, fn func() error) error {
	return fn()
}

// --------------------------------------------------------------------------
// Lock-backed guard
// --------------------------------------------------------------------------

type lockGuard struct {
	locks      lockmgr.ILockManager
	defaultTTL time.Duration
	logger     *zap.Logger
}

func (g *lockGuard) withLock(ctx context.Context, resource string, ttl time.Duration, fn func() error) (err error) {
	if ttl <= 0 {
		ttl = g.defaultTTL
	}

	ok, ownerID, acqErr := g.locks.AcquireLock(ctx, resource, ttl)
	if acqErr != nil {
		return wrapError(KindLockInternal, fmt.Sprintf("failed to acquire lock %q", resource), acqErr)
	}
	if !ok {
		return newError(KindLockInternal, fmt.Sprintf("lock %q is held by a concurrent mutation", resource))
	}

	// The release runs on every exit path. A release failure after a
	// successful guarded operation overrides the success.
	defer func() {
		released, relErr := g.locks.ReleaseLock(ctx, resource, ownerID)
		if relErr == nil && released {
			return
		}
		if err != nil {
			// keep the operation error, the release failure is only logged
			g.logger.Warn("failed to release lock after failed operation",
				zap.String("resource", resource), zap.Error(relErr))
			return
		}
		if relErr != nil {
			err = wrapError(KindLockInternal, fmt.Sprintf("failed to release lock %q", resource), relErr)
			return
		}
		err = newError(KindLockInternal, fmt.Sprintf("lock %q was not released (held by another owner)", resource))
	}()

	return fn()
}
