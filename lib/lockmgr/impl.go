package lockmgr

import (
	"bytes"
	"context"
	"time"

	"github.com/ValentinKolb/rKV/lib/store"
)

type lockMgrImpl struct {
	store store.IStore
}

// NewLockManager creates a lockmgr provider on top of the given store.
// The provider keeps no state of its own, so any number of instances may
// share one store.
func NewLockManager(store store.IStore) ILockManager {
	return &lockMgrImpl{
		store: store,
	}
}

func (lp *lockMgrImpl) AcquireLock(ctx context.Context, resource string, ttl time.Duration) (bool, []byte, error) {
	// Generate the owner ID (256 bit random value)
	ownerID, err := generateOwnerID()
	if err != nil {
		return false, nil, err
	}

	// Try to acquire the lock by setting the value only if it doesn't exist
	// (atomic CAS operation). The ttl bounds the hold duration so a crashed
	// holder cannot block the resource forever.
	res, err := lp.store.SetWithExpiry(ctx, resource, ownerID, store.ModeNX, ttl)
	if err != nil {
		return false, nil, err
	}

	// Return false if the lock is held BY SOMEONE ELSE
	if !res.Applied {
		return false, nil, nil
	}

	return true, ownerID, nil
}

func (lp *lockMgrImpl) ReleaseLock(ctx context.Context, resource string, ownerID []byte) (bool, error) {
	// Check if the lock exists
	value, ok, err := lp.store.Get(ctx, resource)
	if err != nil || !ok {
		return err == nil, err
	}

	// Check if the lock is owned by us
	if !bytes.Equal(ownerID, value) {
		return false, nil
	}

	// Release the lock
	_, err = lp.store.Delete(ctx, resource)
	return err == nil, err
}
