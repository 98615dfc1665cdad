// Package errors provides the error taxonomy surfaced by hostprov.
//
// Every failure that crosses the provisioning boundary is a *ProvisionError.
// It carries a Code for programmatic handling, a user-facing Message and two
// machine-inspectable maps: Data (safe to show to the caller) and Debug
// (diagnostics such as raw transport errors or rollback outcomes).
//
// # Error Codes
//
//   - VALIDATION: missing or malformed input, raised before any remote call
//   - NOT_FOUND: target account, package or plan is absent
//   - CONFLICT: duplicate username or domain
//   - UNSUPPORTED: the panel lacks the capability
//   - AUTHENTICATION: the panel rejected our credentials
//   - CONNECTION: network failure or timeout
//   - UNEXPECTED: unclassified panel failure
//
// # Usage
//
//	return errors.Validation("Domain name is required")
//	return errors.NotFound("Account not found").WithData("username", "bob")
//	return errors.Unsupported("Reseller privileges are not supported")
//
// # Error Checking
//
// Sentinels compare by code:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // Handle not found case
//	}
//
//	var perr *errors.ProvisionError
//	if errors.As(err, &perr) {
//	    fmt.Printf("code=%s debug=%v\n", perr.Code, perr.Debug)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	CodeValidation     ErrorCode = "VALIDATION"     // Input validation failed
	CodeNotFound       ErrorCode = "NOT_FOUND"      // Resource not found
	CodeConflict       ErrorCode = "CONFLICT"       // Resource already exists
	CodeUnsupported    ErrorCode = "UNSUPPORTED"    // Operation not supported by the panel
	CodeAuthentication ErrorCode = "AUTHENTICATION" // Panel rejected credentials
	CodeConnection     ErrorCode = "CONNECTION"     // Network or timeout failure
	CodeUnexpected     ErrorCode = "UNEXPECTED"     // Unclassified remote failure
)

// ProvisionError represents a structured error with context about the operation.
type ProvisionError struct {
	Code    ErrorCode      // Error category
	Message string         // Human-readable message
	Data    map[string]any // Caller-visible details
	Debug   map[string]any // Diagnostic details
	Err     error          // Underlying error (if any)
}

// Error implements the error interface.
func (e *ProvisionError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *ProvisionError) Is(target error) bool {
	t, ok := target.(*ProvisionError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithData sets a caller-visible detail and returns the error for chaining.
func (e *ProvisionError) WithData(key string, value any) *ProvisionError {
	if e.Data == nil {
		e.Data = make(map[string]any)
	}
	e.Data[key] = value
	return e
}

// WithDebug sets a diagnostic detail and returns the error for chaining.
func (e *ProvisionError) WithDebug(key string, value any) *ProvisionError {
	if e.Debug == nil {
		e.Debug = make(map[string]any)
	}
	e.Debug[key] = value
	return e
}

// Sentinel errors, one per code. Use these with errors.Is().
var (
	ErrValidation     = &ProvisionError{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound       = &ProvisionError{Code: CodeNotFound, Message: "not found"}
	ErrConflict       = &ProvisionError{Code: CodeConflict, Message: "conflict"}
	ErrUnsupported    = &ProvisionError{Code: CodeUnsupported, Message: "operation not supported"}
	ErrAuthentication = &ProvisionError{Code: CodeAuthentication, Message: "authentication error"}
	ErrConnection     = &ProvisionError{Code: CodeConnection, Message: "connection error"}
	ErrUnexpected     = &ProvisionError{Code: CodeUnexpected, Message: "unexpected error"}
)

// New creates an error with the given code and message.
func New(code ErrorCode, msg string) *ProvisionError {
	return &ProvisionError{Code: code, Message: msg}
}

// Newf creates an error with the given code and a formatted message.
func Newf(code ErrorCode, format string, args ...any) *ProvisionError {
	return &ProvisionError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) *ProvisionError {
	return New(CodeValidation, msg)
}

// NotFound creates an error for an absent account, package or plan.
func NotFound(msg string) *ProvisionError {
	return New(CodeNotFound, msg)
}

// Conflict creates an error for a duplicate resource.
func Conflict(msg string) *ProvisionError {
	return New(CodeConflict, msg)
}

// Unsupported creates a terminal error for a capability the panel lacks.
func Unsupported(msg string) *ProvisionError {
	return New(CodeUnsupported, msg)
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) *ProvisionError {
	return &ProvisionError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// CodeOf returns the code of the first ProvisionError in err's chain,
// or the empty code when there is none.
func CodeOf(err error) ErrorCode {
	var perr *ProvisionError
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
