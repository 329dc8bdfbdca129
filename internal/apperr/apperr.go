// Package apperr defines the error kinds the API boundary maps onto HTTP
// responses. Services return these; handlers translate them into the JSON
// error envelope and never let anything crash the process.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the handler boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindUpstreamAuth
	KindUpstreamService
)

// Error carries a kind plus a caller-facing detail message. Debug holds
// limited extra context for upstream auth failures and is only included in
// responses when present.
type Error struct {
	Kind    Kind
	Details string
	Debug   map[string]string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Details + ": " + e.err.Error()
	}
	return e.Details
}

func (e *Error) Unwrap() error { return e.err }

// New builds an error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Details: fmt.Sprintf(format, args...)}
}

// Wrap builds an error of the given kind around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Details: fmt.Sprintf(format, args...), err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// DetailsOf extracts the caller-facing detail message from err.
func DetailsOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Details
	}
	return err.Error()
}

// DebugOf extracts the limited debug context, if any.
func DebugOf(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Debug
	}
	return nil
}
