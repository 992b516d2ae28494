// Package rstore implements the store.IStore interface backed by a Redis
// server or cluster using the go-redis client.
//
// Implementation Details:
//
//   - Conditional writes map to SET with the NX/XX option inside a
//     MULTI/EXEC transaction (TxPipeline). The expire step, when a ttl is
//     requested, runs in the same transaction so that the batch is atomic
//     and the per-step outcome can be inspected afterwards.
//
//   - A SET NX/XX whose precondition does not hold is not an error: the
//     client reports it as a false boolean reply, which is surfaced through
//     SetResult.Applied. Only transport and server failures are returned as
//     errors, wrapped into the typed store.Error.
//
//   - FlushPrefix walks the keyspace with SCAN and deletes matching keys in
//     batches. It is not atomic with respect to concurrent writers and is
//     intended for maintenance, not steady-state traffic.
//
// The consistency and persistence guarantees of the data are those of the
// Redis deployment; this package adds no replication or durability of its own.
package rstore
