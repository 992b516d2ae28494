package testing

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ValentinKolb/rKV/lib/store"
)

// StoreFactory is a function that creates a new instance of an IStore implementation
type StoreFactory func() store.IStore

// RunStoreTests runs a conformance test suite for an IStore implementation.
// Every implementation of the interface is expected to pass this suite.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("SetNX", func(t *testing.T) {
			testSetNX(t, factory())
		})

		t.Run("SetXX", func(t *testing.T) {
			testSetXX(t, factory())
		})

		t.Run("Expiry", func(t *testing.T) {
			testExpiry(t, factory())
		})

		t.Run("Delete", func(t *testing.T) {
			testDelete(t, factory())
		})

		t.Run("Has", func(t *testing.T) {
			testHas(t, factory())
		})

		t.Run("FlushPrefix", func(t *testing.T) {
			testFlushPrefix(t, factory())
		})

		t.Run("FlushAll", func(t *testing.T) {
			testFlushAll(t, factory())
		})

		t.Run("ConcurrentSetNX", func(t *testing.T) {
			testConcurrentSetNX(t, factory())
		})
	})
}

func testSetGet(t *testing.T, s store.IStore) {
	ctx := context.Background()

	res, err := s.SetWithExpiry(ctx, "k", []byte("v"), store.ModeAlways, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied {
		t.Fatal("unconditional set must always apply")
	}

	value, loaded, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !loaded || !bytes.Equal(value, []byte("v")) {
		t.Errorf("expected value %q, got %q (loaded=%v)", "v", value, loaded)
	}

	// missing key
	_, loaded, err = s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded {
		t.Error("missing key must not be loaded")
	}
}

func testSetNX(t *testing.T, s store.IStore) {
	ctx := context.Background()

	res, err := s.SetWithExpiry(ctx, "k", []byte("first"), store.ModeNX, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied {
		t.Fatal("NX on a missing key must apply")
	}

	res, err = s.SetWithExpiry(ctx, "k", []byte("second"), store.ModeNX, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Applied {
		t.Error("NX on an existing key must not apply")
	}

	value, _, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(value, []byte("first")) {
		t.Errorf("value was overwritten by a failed NX set: %q", value)
	}
}

func testSetXX(t *testing.T, s store.IStore) {
	ctx := context.Background()

	res, err := s.SetWithExpiry(ctx, "k", []byte("v"), store.ModeXX, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Applied {
		t.Error("XX on a missing key must not apply")
	}
	if loaded, _ := s.Has(ctx, "k"); loaded {
		t.Error("failed XX set must not create the key")
	}

	if _, err := s.SetWithExpiry(ctx, "k", []byte("v1"), store.ModeAlways, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err = s.SetWithExpiry(ctx, "k", []byte("v2"), store.ModeXX, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied {
		t.Error("XX on an existing key must apply")
	}

	value, _, _ := s.Get(ctx, "k")
	if !bytes.Equal(value, []byte("v2")) {
		t.Errorf("expected %q, got %q", "v2", value)
	}
}

func testExpiry(t *testing.T, s store.IStore) {
	ctx := context.Background()

	res, err := s.SetWithExpiry(ctx, "k", []byte("v"), store.ModeNX, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied || !res.ExpiryApplied {
		t.Fatalf("expected applied set with applied expiry, got %+v", res)
	}

	if loaded, _ := s.Has(ctx, "k"); !loaded {
		t.Fatal("key must exist before expiry")
	}

	time.Sleep(100 * time.Millisecond)

	if loaded, _ := s.Has(ctx, "k"); loaded {
		t.Error("key must be gone after expiry")
	}

	// an expired key is treated as absent by NX
	res, err = s.SetWithExpiry(ctx, "k", []byte("v2"), store.ModeNX, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Applied {
		t.Error("NX after expiry must apply")
	}
}

func testDelete(t *testing.T, s store.IStore) {
	ctx := context.Background()

	if _, err := s.SetWithExpiry(ctx, "k", []byte("v"), store.ModeAlways, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	removed, err := s.Delete(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed key, got %d", removed)
	}

	removed, err = s.Delete(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("expected 0 removed keys, got %d", removed)
	}
}

func testHas(t *testing.T, s store.IStore) {
	ctx := context.Background()

	if loaded, _ := s.Has(ctx, "k"); loaded {
		t.Error("missing key must not be loaded")
	}

	if _, err := s.SetWithExpiry(ctx, "k", []byte("v"), store.ModeAlways, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loaded, _ := s.Has(ctx, "k"); !loaded {
		t.Error("existing key must be loaded")
	}
}

func testFlushPrefix(t *testing.T, s store.IStore) {
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("ns-a:key-%d", i)
		if _, err := s.SetWithExpiry(ctx, key, []byte("v"), store.ModeAlways, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.SetWithExpiry(ctx, "ns-b:key", []byte("v"), store.ModeAlways, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.FlushPrefix(ctx, "ns-a:"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("ns-a:key-%d", i)
		if loaded, _ := s.Has(ctx, key); loaded {
			t.Errorf("key %s must be gone after prefix flush", key)
		}
	}
	if loaded, _ := s.Has(ctx, "ns-b:key"); !loaded {
		t.Error("keys outside the prefix must survive the flush")
	}
}

func testFlushAll(t *testing.T, s store.IStore) {
	ctx := context.Background()

	for _, key := range []string{"ns-a:k", "ns-b:k", "plain"} {
		if _, err := s.SetWithExpiry(ctx, key, []byte("v"), store.ModeAlways, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := s.FlushAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"ns-a:k", "ns-b:k", "plain"} {
		if loaded, _ := s.Has(ctx, key); loaded {
			t.Errorf("key %s must be gone after flush all", key)
		}
	}
}

func testConcurrentSetNX(t *testing.T, s store.IStore) {
	const workers = 16
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			value := []byte(fmt.Sprintf("worker-%d", n))
			res, err := s.SetWithExpiry(ctx, "contended", value, store.ModeNX, 0)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if res.Applied {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if applied != 1 {
		t.Errorf("exactly one concurrent NX set must apply, got %d", applied)
	}
}
