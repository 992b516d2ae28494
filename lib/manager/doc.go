// Package manager implements the coordination core of rKV: conditional
// create/update/upsert semantics, optional cluster-wide per-key locking,
// bounded retry of transient backend failures, key namespacing and
// type-preserving value encoding, layered on any store.IStore backend.
//
// The manager itself holds no process-wide mutable state; any number of
// managers may be created against the same backend, and any number of
// callers may use one manager concurrently.
//
// Operation Semantics:
//
//   - Add, Update and Upsert issue one atomic backend batch consisting of a
//     conditional set (NX for Add, XX for Update, unconditional for Upsert)
//     plus, when a default expiry is configured, an expire in the same
//     batch. The batch outcome is inspected afterwards: a precondition that
//     did not hold raises KeyExists/KeyNotExist immediately, an expire step
//     that did not apply raises a backend error distinct from the conflict.
//
//   - Get and Has are never locked and may observe a value mid-mutation.
//     Get reports absence through its boolean return value, which is
//     distinct from a stored null.
//
//   - ClearNamespace and ClearAll are maintenance operations without any
//     isolation from concurrent mutators.
//
// Retry Policy:
//
//	Transient backend failures (any error returned by the store) are
//	retried synchronously up to MaxRetries times without delay between
//	attempts. Domain conflicts are terminal and never retried. The missing
//	backoff is safe because the conditional-write semantics make retried
//	attempts idempotent.
//
// Locking:
//
//	A manager is constructed in one of two shapes. NewManager serializes
//	nothing; NewLockedManager wraps every mutation of a key in an
//	acquire/release of the lock resource "lock:<namespace>:<key>". The lock
//	is released on every exit path. A release failure after a successful
//	write surfaces as a LockInternalError instead of the success: the two
//	outcomes are deliberately not merged, because merging would silently
//	drop the information about an unreleased lock. There is no compensating
//	rollback of the write in that case.
//
// Error Taxonomy:
//
//	All failures are reported as *Error with a closed kind enumeration:
//	KeyExists, KeyNotExist, InvalidKey, LockInternalError,
//	BackendInternalError and UnknownInternalError. Every error carries a
//	message and, where applicable, the wrapped original cause.
package manager
