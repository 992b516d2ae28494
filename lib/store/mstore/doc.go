// Package mstore implements a local, in-memory, single-process key-value
// store based on the store.IStore interface. Data is stored entirely in
// memory and is not persisted between process restarts.
//
// Key Features:
//   - Pure in-memory storage without persistence or network dependency
//   - Full conditional-write semantics (NX/XX) with atomic per-key updates
//   - Lazy expiry: expired entries are removed when they are next accessed
//   - Thread-safe operations for concurrent access
//
// Implementation Details:
//
//   - Conditional writes are implemented with the atomic Compute operation
//     of xsync.MapOf, so the existence check and the write happen as one
//     per-key atomic step exactly like the MULTI/EXEC batch of the Redis
//     implementation.
//
//   - Expiry is tracked as an absolute timestamp per entry. There is no
//     background sweeper; an expired entry is treated as absent and removed
//     the next time it is read or written.
//
// Suitable Use Cases:
//
//	The memory store is ideal for:
//	- Testing and development environments
//	- Ephemeral single-process caching where a Redis server is not available
//
// For production use with multiple processes, use the rstore package, which
// provides the same interface backed by a Redis server or cluster.
package mstore
