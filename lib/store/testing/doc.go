// Package testing provides a reusable conformance suite for implementations
// of the store.IStore interface. New backend implementations should call
// RunStoreTests from their own test file to verify the conditional-write,
// expiry and flush semantics the manager relies on.
package testing
