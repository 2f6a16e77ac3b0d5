// Package errors provides error handling for aircraftdb.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - PII-safe error formatting
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "try increasing the timeout")
//
//	// Check error categories
//	if errors.IsValidation(err) {
//	    // reject the request, keep serving
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSafeDetails    = crdb.WithSafeDetails
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Advanced features
var (
	Handled                 = crdb.Handled
	HandledWithMessage      = crdb.HandledWithMessage
	EncodeError             = crdb.EncodeError
	DecodeError             = crdb.DecodeError
	GetReportableStackTrace = crdb.GetReportableStackTrace
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Error categories for the reference store.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the category.
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = New("not found")

	// ErrValidation indicates rejected input: a malformed key, an unsupported
	// file, or an ad-hoc query that failed a safety check
	ErrValidation = New("validation failed")

	// ErrIngestion indicates a source file could not be read or decoded
	ErrIngestion = New("ingestion failed")

	// ErrExecution indicates a storage-level failure; the message is already
	// sanitized for callers, full detail lives in the server log
	ErrExecution = New("execution error")

	// ErrConcurrency indicates the write lock could not be acquired in time
	ErrConcurrency = New("concurrency conflict")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsValidation checks if an error is or wraps ErrValidation
func IsValidation(err error) bool {
	return err != nil && Is(err, ErrValidation)
}

// IsIngestion checks if an error is or wraps ErrIngestion
func IsIngestion(err error) bool {
	return err != nil && Is(err, ErrIngestion)
}

// IsExecution checks if an error is or wraps ErrExecution
func IsExecution(err error) bool {
	return err != nil && Is(err, ErrExecution)
}

// IsConcurrency checks if an error is or wraps ErrConcurrency
func IsConcurrency(err error) bool {
	return err != nil && Is(err, ErrConcurrency)
}

// WrapNotFound wraps an error as a not-found error with context
func WrapNotFound(err error, context string) error {
	return Wrap(Wrap(ErrNotFound, err.Error()), context)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// Validationf creates a validation error with a formatted message
func Validationf(format string, args ...interface{}) error {
	return Wrap(ErrValidation, Newf(format, args...).Error())
}

// Ingestionf creates an ingestion error with a formatted message
func Ingestionf(format string, args ...interface{}) error {
	return Wrap(ErrIngestion, Newf(format, args...).Error())
}

// Executionf creates an execution error with a formatted message.
// The message must not carry driver or schema detail; log those instead.
func Executionf(format string, args ...interface{}) error {
	return Wrap(ErrExecution, Newf(format, args...).Error())
}

// Concurrencyf creates a concurrency error with a formatted message
func Concurrencyf(format string, args ...interface{}) error {
	return Wrap(ErrConcurrency, Newf(format, args...).Error())
}
