// Package cmd implements the command-line interface for the rKV key-value
// manager. It provides a hierarchical command structure with operations for
// interacting with a remote Redis backend (or a local in-memory store).
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (add, update, upsert, get, etc.)
//   - lock: Commands for locking operations (acquire, release)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See rkv -help for a list of all commands.
package cmd
