// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperrors defines the closed set of trusted application errors.
//
// Every failure a flow intends to expose to a client is raised as an *Error
// at the point of detection, carrying an HTTP status, a stable string code,
// and a client-safe message. The HTTP error classifier matches on this type:
// anything that is not an *Error (and not a validation error) is treated as
// untrusted and rendered as a generic internal failure.
package apperrors

import (
	"fmt"
	"net/http"
)

// Stable machine-readable error codes returned in the response envelope.
// Clients are expected to branch on these, not on message text.
const (
	CodeEmailInUse            = "EMAIL_IN_USE"
	CodeInvalidEmail          = "INVALID_EMAIL"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeEmailNotVerified      = "EMAIL_NOT_VERIFIED"
	CodeNoRefreshToken        = "NO_REFRESH_TOKEN"
	CodeInvalidRefreshToken   = "INVALID_REFRESH_TOKEN"
	CodeMissingToken          = "MISSING_TOKEN"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeSessionNotFound       = "SESSION_NOT_FOUND"
	CodeSessionAlreadyRevoked = "SESSION_ALREADY_REVOKED"
	CodeValidationError       = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeInternal              = "INTERNAL_ERROR"
)

// Error is a trusted, classified application failure. It is safe to describe
// to a client exactly as constructed: Status, Code, Message, and Details are
// all wire-visible. Err optionally wraps the underlying cause for server-side
// logging and errors.Is/As matching; it is never serialized.
type Error struct {
	// Status is the HTTP status code the failure maps to.
	Status int

	// Code is the stable machine-readable identifier of the failure.
	Code string

	// Message is the human-readable, client-safe description.
	Message string

	// Details carries optional structured context, e.g. a map of field
	// names to validation messages.
	Details any

	// Err is the wrapped internal cause, if any. Logged, never exposed.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the internal cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithCause returns a copy of the error wrapping err as its internal cause.
// The wire-visible fields are unchanged.
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// WithDetails returns a copy of the error carrying the given structured
// details.
func (e *Error) WithDetails(details any) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// BadRequest constructs a 400 error with the given code and message.
func BadRequest(code, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized constructs a 401 error with the given code and message.
func Unauthorized(code, message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: code, Message: message}
}

// Forbidden constructs a 403 error with the given code and message.
func Forbidden(code, message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: code, Message: message}
}

// NotFound constructs a 404 error with the given code and message.
func NotFound(code, message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message}
}

// Conflict constructs a 409 error with the given code and message.
func Conflict(code, message string) *Error {
	return &Error{Status: http.StatusConflict, Code: code, Message: message}
}

// Internal constructs a 500 error. The message is still client-safe; raw
// causes belong in Err via WithCause.
func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeInternal, Message: message}
}
