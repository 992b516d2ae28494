package manager

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

// ErrorKind is the closed enumeration of manager failure classes.
type ErrorKind uint8

const (
	// KindUnknown classifies unexpected failures not matching a recognized case.
	KindUnknown ErrorKind = iota
	// KindKeyExists is returned by Add when the key already exists.
	KindKeyExists
	// KindKeyNotExist is returned by Update when the key does not exist.
	KindKeyNotExist
	// KindInvalidKey is returned for malformed keys.
	KindInvalidKey
	// KindLockInternal classifies lock acquire and release failures.
	KindLockInternal
	// KindStoreInternal classifies exhausted retries and partial-batch failures.
	KindStoreInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindKeyExists:
		return "KeyExists"
	case KindKeyNotExist:
		return "KeyNotExist"
	case KindInvalidKey:
		return "InvalidKey"
	case KindLockInternal:
		return "LockInternalError"
	case KindStoreInternal:
		return "BackendInternalError"
	default:
		return "UnknownInternalError"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the single error type raised by the manager. It carries a kind
// discriminant, a human-readable message and the wrapped original cause.
type Error struct {
	Kind  ErrorKind // The failure class
	Msg   string    // The error message
	Cause error     // The wrapped original error, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ManagerError (%s): %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("ManagerError (%s): %s", e.Kind, e.Msg)
}

// Unwrap returns the wrapped cause for use with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError creates a new manager error with the given kind and message.
func newError(kind ErrorKind, msg string) *Error {
	return &Error{
		Kind: kind,
		Msg:  msg,
	}
}

// wrapError creates a new manager error wrapping the given cause.
func wrapError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{
		Kind:  kind,
		Msg:   msg,
		Cause: cause,
	}
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

// KindOf returns the ErrorKind of a manager error, or KindUnknown for
// nil and foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKeyExists reports whether err is an Add conflict.
func IsKeyExists(err error) bool { return KindOf(err) == KindKeyExists }

// IsKeyNotExist reports whether err is an Update conflict.
func IsKeyNotExist(err error) bool { return KindOf(err) == KindKeyNotExist }

// IsInvalidKey reports whether err was caused by a malformed key.
func IsInvalidKey(err error) bool { return KindOf(err) == KindInvalidKey }

// IsLockInternal reports whether err was caused by the lock provider.
func IsLockInternal(err error) bool { return KindOf(err) == KindLockInternal }

// IsStoreInternal reports whether err was caused by the backend store.
func IsStoreInternal(err error) bool { return KindOf(err) == KindStoreInternal }
