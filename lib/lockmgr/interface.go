package lockmgr

import (
	"context"
	"time"
)

// ILockManager defines the interface for a lockmgr provider.
type ILockManager interface {
	// AcquireLock acquires a lockmgr for the given resource with a ttl bounding
	// the maximum hold duration.
	// Returns a boolean indicating whether the lockmgr was acquired, an owner ID, and an error if any.
	AcquireLock(ctx context.Context, resource string, ttl time.Duration) (ok bool, ownerID []byte, err error)

	// ReleaseLock releases the lockmgr for the given resource.
	// Returns a boolean indicating whether the lockmgr was released, and an error if any.
	// The method will also return true if the lockmgr did not exist (e.g. it
	// already expired).
	ReleaseLock(ctx context.Context, resource string, ownerID []byte) (ok bool, err error)
}
