// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apperr defines the application error taxonomy shared by the
// store, auth, and handler layers. Errors carry a machine-readable Kind
// that handlers translate into HTTP status codes.
package apperr

import "fmt"

// Kind classifies an application error.
type Kind string

// Error kinds. Auth kinds are all surfaced to clients as a generic 401;
// the distinction exists for logs and tests only.
const (
	KindValidation        Kind = "validation"
	KindMissingCredential Kind = "missing_credential"
	KindInvalidCredential Kind = "invalid_credential"
	KindExpired           Kind = "expired"
	KindMalformed         Kind = "malformed"
	KindNotFound          Kind = "not_found"
	KindStoreUnavailable  Kind = "store_unavailable"
)

// Error is the domain error type. Matching with errors.Is compares by Kind,
// so sentinel values and wrapped instances interchange freely.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates an error with a kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error that wraps an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Sentinels for errors.Is matching.
var (
	ErrValidation        = New(KindValidation, "validation failed")
	ErrMissingCredential = New(KindMissingCredential, "missing credential")
	ErrInvalidCredential = New(KindInvalidCredential, "invalid credential")
	ErrExpired           = New(KindExpired, "credential expired")
	ErrMalformed         = New(KindMalformed, "malformed credential")
	ErrNotFound          = New(KindNotFound, "not found")
	ErrStoreUnavailable  = New(KindStoreUnavailable, "store unavailable")
)
