// Package store defines the backend contract of rKV: a remote key-value
// store exposing existence checks, reads, atomic conditional writes with
// optional expiry, deletes and prefix or global flushes.
//
// The package focuses on:
//   - A unified interface (IStore) for backend operations across different
//     implementations, so the manager never depends on a concrete client
//   - A strict separation between domain outcomes and transport failures:
//     a conditional write whose precondition does not hold reports that
//     through SetResult, while every returned error means the backend could
//     not be reached or failed internally and the call may be retried
//
// Key Components:
//
//   - IStore Interface: The core abstraction for all backend operations.
//     Writes with a ttl are issued as one atomic batch (set plus expire)
//     and the per-step outcome is reported through SetResult, which lets
//     callers distinguish an existence conflict from a half-applied batch.
//
//   - Error System: A structured error reporting mechanism using typed
//     error codes, descriptive messages and a wrapped cause. This allows
//     applications to make informed decisions based on specific error
//     conditions rather than generic errors.
//
// Implementations:
//
//	The package includes two implementations of the IStore interface:
//
//	- Redis Store (rstore): The production implementation backed by a Redis
//	  server or cluster via the go-redis client. Conditional writes map to
//	  SET NX/XX inside a MULTI/EXEC transaction.
//	  Available in the "github.com/ValentinKolb/rKV/lib/store/rstore" package.
//
//	- Memory Store (mstore): A single-process, in-memory implementation used
//	  for tests and local experimentation. It provides the same conditional
//	  semantics without any network dependency.
//	  Available in the "github.com/ValentinKolb/rKV/lib/store/mstore" package.
//
// The "github.com/ValentinKolb/rKV/lib/store/testing" package provides a
// conformance suite that any IStore implementation should pass.
package store
