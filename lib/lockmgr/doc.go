// Package lockmgr implements a locking mechanism using key-value stores
// that implement the store.IStore interface. It provides a simple yet
// robust way to coordinate access to shared resources across multiple
// processes or nodes that share one backend.
//
// The lockmgr only ever stores in the provided IStore and has no other
// internal state. Therefor it is safe to be created multiple times on the
// same store; as long as the same store is used every time, all locks will
// work as expected.
//
// Core Functionality:
//   - Lock acquisition with ownership verification
//   - Automatic lockmgr expiration through a mandatory ttl
//   - Safe release operations that verify ownership
//
// Implementation Approach:
//
//	Locks are implemented by leveraging the atomic conditional operations
//	of the underlying store. Specifically:
//
//	- Lock Acquisition: Attempts to create a key using an NX set, which
//	  guarantees that only one requester can successfully create the key.
//	  The value contains a randomly generated owner ID that identifies the
//	  lockmgr holder.
//
//	- TTL: Every lockmgr carries a ttl that automatically releases it after
//	  the specified period, preventing deadlocks if a client crashes. An
//	  operation that outlives its lockmgr ttl is no longer protected; sizing
//	  the ttl is the caller's responsibility.
//
//	- Safe Release: The ReleaseLock operation first verifies that the
//	  requester is the legitimate owner of the lockmgr by comparing owner IDs
//	  before executing the Delete operation. Releasing a lockmgr that has
//	  already expired reports success.
//
// Distributed Considerations:
//
//	The cluster-wide exclusivity of a lockmgr is exactly as strong as the
//	atomicity of the backend's NX set. The release path (read, compare,
//	delete) is not a single atomic step; a lockmgr that expires between the
//	read and the delete can in rare cases remove a successor's lockmgr.
//	Deployments that need strict fencing must layer a fencing token on top.
//
// Performance Impact:
//
//	Lock operations require 1-2 store operations each:
//	- AcquireLock: One conditional set
//	- ReleaseLock: One Get followed by a conditional Delete
package lockmgr
