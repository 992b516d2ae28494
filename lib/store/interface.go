package store

import (
	"context"
	"fmt"
	"time"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// SetMode selects the existence precondition of a conditional write.
type SetMode uint8

const (
	// ModeAlways writes unconditionally.
	ModeAlways SetMode = iota
	// ModeNX writes only if the key does not exist yet.
	ModeNX
	// ModeXX writes only if the key already exists.
	ModeXX
)

func (m SetMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNX:
		return "NX"
	case ModeXX:
		return "XX"
	default:
		return "unknown"
	}
}

// SetResult reports the per-step outcome of a conditional write batch.
// Applied is false when the existence precondition of the chosen SetMode
// did not hold. ExpiryApplied is only meaningful when a ttl was requested
// and the write was applied.
type SetResult struct {
	Applied       bool
	ExpiryApplied bool
}

// IStore is the generic interface for interacting with a remote key–value
// backend. A write with a ttl must be issued as one atomic batch (set plus
// expire) whose per-step outcome is reported through SetResult.
//
// Existence conflicts of conditional writes are not errors: they travel in
// SetResult.Applied. Every non-nil error returned by an IStore method is a
// backend communication failure and may be retried by the caller.
type IStore interface {
	// SetWithExpiry inserts or updates a key–value pair subject to the given
	// SetMode. A ttl of zero means the entry never expires; a positive ttl is
	// applied in the same atomic batch as the write.
	SetWithExpiry(ctx context.Context, key string, value []byte, mode SetMode, ttl time.Duration) (res SetResult, err error)
	// Delete deletes a key–value pair. It returns the number of removed keys.
	Delete(ctx context.Context, key string) (removed int64, err error)
	// Get returns the value for a key. The boolean return value indicates whether a value for the key was found.
	Get(ctx context.Context, key string) (value []byte, loaded bool, err error)
	// Has returns whether a key exists in the store.
	Has(ctx context.Context, key string) (loaded bool, err error)
	// FlushPrefix removes every key starting with the given prefix.
	FlushPrefix(ctx context.Context, prefix string) (err error)
	// FlushAll removes every key in the backend, across all prefixes.
	FlushAll(ctx context.Context) (err error)
	// Close releases the connection to the backend.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and the original cause.
type Error struct {
	Code  RetCode // The return code
	Msg   string  // The error message
	Cause error   // The wrapped original error, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCUnsupportedOperation:
		errorCode = "UnsupportedOperation"
	case RetCInvalidOperation:
		errorCode = "InvalidOperation"
	default:
		errorCode = "Unknown"
	}

	if e.Cause != nil {
		return fmt.Sprintf("KVStoreError (code %s): %s: %v", errorCode, e.Msg, e.Cause)
	}
	return fmt.Sprintf("KVStoreError (code %s): %s", errorCode, e.Msg)
}

// Unwrap returns the wrapped cause for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new KVStoreError with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError creates a new KVStoreError wrapping the given cause.
func WrapError(code RetCode, msg string, cause error) *Error {
	return &Error{
		Code:  code,
		Msg:   msg,
		Cause: cause,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Command executed successfully.
	RetCInternalError                       // 1: Command failed due to an internal error.
	RetCUnsupportedOperation                // 2: Operation is not supported by underlying backend.
	RetCInvalidOperation                    // 3: Invalid operation.
)
