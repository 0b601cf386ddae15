// Package apperr defines the error taxonomy shared by services and handlers:
// validation, conflict, invalid-state, not-found and transport. Services
// return these; the HTTP layer maps each kind to a status code. Wrapping with
// fmt.Errorf("...: %w", err) preserves the kind through errors.As.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation policy and HTTP mapping.
type Kind int

const (
	// KindValidation — malformed input caught before any remote call.
	KindValidation Kind = iota
	// KindConflict — duplicate relation, cheque already linked, etc.
	// Recoverable in bulk flows; folded into aggregate counts, not fatal.
	KindConflict
	// KindInvalidState — operation legal in general but not in the entity's
	// current state (e.g. unlinking from a finance-approved factor).
	KindInvalidState
	// KindNotFound — the referenced entity does not exist upstream.
	KindNotFound
	// KindTransport — the remote call itself failed.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error carries a kind and a user-presentable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an Error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from err, or KindTransport when err carries none —
// an unclassified failure is treated as the remote call having failed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
