package manager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ValentinKolb/rKV/lib/store/mstore"
)

// stubLocks records lock traffic and can be told to fail
type stubLocks struct {
	acquires      int
	releases      int
	lastResource  string
	lastTTL       time.Duration
	failAcquire   bool
	refuseAcquire bool
	failRelease   bool
	refuseRelease bool
}

func (s *stubLocks) AcquireLock(_ context.Context, resource string, ttl time.Duration) (bool, []byte, error) {
	s.acquires++
	s.lastResource = resource
	s.lastTTL = ttl
	if s.failAcquire {
		return false, nil, errors.New("lock provider unreachable")
	}
	if s.refuseAcquire {
		return false, nil, nil
	}
	return true, []byte("owner"), nil
}

func (s *stubLocks) ReleaseLock(_ context.Context, resource string, _ []byte) (bool, error) {
	s.releases++
	s.lastResource = resource
	if s.failRelease {
		return false, errors.New("lock provider unreachable")
	}
	if s.refuseRelease {
		return false, nil
	}
	return true, nil
}

func newLockedTestManager(t *testing.T, locks *stubLocks) IManager {
	t.Helper()
	m, err := NewLockedManager(
		mstore.NewMemoryStore(),
		locks,
		Config{Namespace: "test"},
		LockConfig{DefaultTTL: time.Minute},
	)
	if err != nil {
		t.Fatalf("failed to create locked manager: %v", err)
	}
	return m
}

func TestLockLifecycle(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{}
	m := newLockedTestManager(t, locks)

	if err := m.Add(ctx, "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locks.acquires != 1 || locks.releases != 1 {
		t.Errorf("expected 1 acquire and 1 release, got %d/%d", locks.acquires, locks.releases)
	}
	if locks.lastResource != "lock:test:k" {
		t.Errorf("unexpected lock resource %q", locks.lastResource)
	}
	if locks.lastTTL != time.Minute {
		t.Errorf("expected default ttl, got %v", locks.lastTTL)
	}
}

func TestLockTTLOverride(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{}
	m := newLockedTestManager(t, locks)

	if err := m.Upsert(ctx, "k", "v", WithLockTTL(5*time.Second)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locks.lastTTL != 5*time.Second {
		t.Errorf("expected overridden ttl of 5s, got %v", locks.lastTTL)
	}
}

func TestLockReleasedOnDomainConflict(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{}
	m := newLockedTestManager(t, locks)

	if err := m.Add(ctx, "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Add(ctx, "k", "v2"); !IsKeyExists(err) {
		t.Fatalf("expected KeyExists, got %v", err)
	}

	// both operations must have released their lock
	if locks.acquires != 2 || locks.releases != 2 {
		t.Errorf("lock must be released on the conflict path, got %d/%d", locks.acquires, locks.releases)
	}
}

func TestLockAcquireFailure(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{failAcquire: true}
	m := newLockedTestManager(t, locks)

	if err := m.Add(ctx, "k", "v"); !IsLockInternal(err) {
		t.Fatalf("expected LockInternalError, got %v", err)
	}
	if loaded, _ := m.Has(ctx, "k"); loaded {
		t.Error("a write must not happen without the lock")
	}
	if locks.releases != 0 {
		t.Error("an unacquired lock must not be released")
	}
}

func TestLockHeldByOther(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{refuseAcquire: true}
	m := newLockedTestManager(t, locks)

	if err := m.Add(ctx, "k", "v"); !IsLockInternal(err) {
		t.Fatalf("expected LockInternalError, got %v", err)
	}
	if loaded, _ := m.Has(ctx, "k"); loaded {
		t.Error("a write must not happen without the lock")
	}
}

func TestReleaseFailureOverridesSuccess(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{failRelease: true}
	m := newLockedTestManager(t, locks)

	// the guarded write succeeds, the release fails: the release failure
	// is surfaced and the write is not rolled back
	if err := m.Add(ctx, "k", "v"); !IsLockInternal(err) {
		t.Fatalf("expected LockInternalError, got %v", err)
	}

	value, loaded, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !loaded || value != "v" {
		t.Errorf("the guarded write must survive a failed release, got (%v, %v)", value, loaded)
	}
}

func TestReleaseFailureAfterFailedOperation(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{failRelease: true}
	m := newLockedTestManager(t, locks)

	if err := m.Add(ctx, "k", "v"); !IsLockInternal(err) {
		t.Fatalf("expected LockInternalError, got %v", err)
	}
	locks.releases = 0

	// when operation and release both fail, the operation error wins
	if err := m.Add(ctx, "k", "v2"); !IsKeyExists(err) {
		t.Fatalf("expected the domain conflict to win over the release failure, got %v", err)
	}
	if locks.releases != 1 {
		t.Error("the release must still have been attempted")
	}
}

func TestDeleteIsLocked(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{}
	m := newLockedTestManager(t, locks)

	if err := m.Add(ctx, "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locks.acquires != 2 {
		t.Errorf("delete must acquire the lock, got %d acquires", locks.acquires)
	}
}

func TestReadsAreNotLocked(t *testing.T) {
	ctx := context.Background()
	locks := &stubLocks{}
	m := newLockedTestManager(t, locks)

	if err := m.Add(ctx, "k", "v"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	locks.acquires = 0

	if _, _, err := m.Get(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Has(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if locks.acquires != 0 {
		t.Errorf("reads must never lock, got %d acquires", locks.acquires)
	}
}

func TestLockedManagerValidation(t *testing.T) {
	st := mstore.NewMemoryStore()

	if _, err := NewLockedManager(st, nil, Config{Namespace: "test"}, LockConfig{DefaultTTL: time.Minute}); err == nil {
		t.Error("expected error for nil lock manager")
	}
	if _, err := NewLockedManager(st, &stubLocks{}, Config{Namespace: "test"}, LockConfig{}); err == nil {
		t.Error("expected error for missing default ttl")
	}
}
