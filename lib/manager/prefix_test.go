package manager

import "testing"

func TestPrefixConcatSplit(t *testing.T) {
	p, err := newPrefixCodec("sessions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefixed, err := p.concat("user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prefixed != "sessions:user-1" {
		t.Errorf("expected %q, got %q", "sessions:user-1", prefixed)
	}

	key, err := p.split(prefixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "user-1" {
		t.Errorf("expected %q, got %q", "user-1", key)
	}
}

func TestPrefixRejectsMalformedKeys(t *testing.T) {
	p, err := newPrefixCodec("ns")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, key := range []string{"", "a:b"} {
		if _, err := p.concat(key); !IsInvalidKey(err) {
			t.Errorf("expected InvalidKey for %q, got %v", key, err)
		}
	}

	if _, err := p.split("other:key"); !IsInvalidKey(err) {
		t.Errorf("expected InvalidKey for foreign prefix, got %v", err)
	}
}

func TestPrefixRejectsMalformedNamespaces(t *testing.T) {
	for _, ns := range []string{"", "a:b"} {
		if _, err := newPrefixCodec(ns); !IsInvalidKey(err) {
			t.Errorf("expected InvalidKey for namespace %q, got %v", ns, err)
		}
	}
}

func TestLockResource(t *testing.T) {
	if got := lockResource("ns:key"); got != "lock:ns:key" {
		t.Errorf("expected %q, got %q", "lock:ns:key", got)
	}
}
