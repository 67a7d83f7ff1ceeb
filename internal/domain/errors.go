package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error produced by the services matches exactly one of
// these through errors.Is.
var (
	// ErrValidationFailed is a client-side rule violation. Nothing was written.
	ErrValidationFailed = errors.New("validation failed")

	// ErrRemoteOperationFailed is any failed data-access, storage or auth call.
	ErrRemoteOperationFailed = errors.New("remote operation failed")

	// ErrNotFound signals that a single-row fetch returned no row.
	ErrNotFound = errors.New("not found")
)

// Backend error codes understood by the friendly-message lookup.
const (
	CodeNoRows                = "PGRST116"
	CodeUniqueViolation       = "23505"
	CodeForeignKeyViolation   = "23503"
	CodeInsufficientPrivilege = "42501"
	CodeUndefinedTable        = "42P01"

	CodeAuthInvalidEmail    = "auth/invalid-email"
	CodeAuthUserNotFound    = "auth/user-not-found"
	CodeAuthWrongPassword   = "auth/wrong-password"
	CodeAuthWeakPassword    = "auth/weak-password"
	CodeAuthEmailInUse      = "auth/email-already-in-use"
	CodeAuthTooManyRequests = "auth/too-many-requests"
)

// Error carries an error kind plus the optional backend code, the offending
// field (validation only) and the underlying cause.
type Error struct {
	Kind    error
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%v [%s]: %s", e.Kind, e.Code, msg)
	}
	return fmt.Sprintf("%v: %s", e.Kind, msg)
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// Invalid builds a ValidationFailed error for field.
func Invalid(field, message string) *Error {
	return &Error{Kind: ErrValidationFailed, Field: field, Message: message}
}

// Forbidden builds the error returned when the acting role may not perform an operation.
func Forbidden(message string) *Error {
	return &Error{Kind: ErrRemoteOperationFailed, Code: CodeInsufficientPrivilege, Message: message}
}

// Remote wraps err as a RemoteOperationFailed error with an optional backend code.
func Remote(code string, err error) *Error {
	return &Error{Kind: ErrRemoteOperationFailed, Code: code, Err: err}
}

// Missing builds a NotFound error naming the entity.
func Missing(entity string) *Error {
	return &Error{Kind: ErrNotFound, Code: CodeNoRows, Message: entity + " not found"}
}

// CodeOf extracts the backend code from err, or "".
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		if de.Message != "" {
			return de.Message
		}
		if de.Err != nil {
			return de.Err.Error()
		}
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
