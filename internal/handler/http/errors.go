package http

import "errors"

// Sentinel errors used when parsing the "Authorization" HTTP header.
var (
	// ErrEmptyAuthorizationHeader reports a request without an
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader reports a header that is not a
	// two-part bearer credential.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)
