package service

import "errors"

var (
	// ErrTokenExpired reports a structurally valid token whose lifetime has
	// elapsed. Callers distinguish it from ErrTokenInvalid to produce the
	// expired-specific response or redirect.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid covers every other parse failure: bad signature,
	// wrong issuer, malformed payload, wrong token class.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrInvalidProfile reports a federated identity assertion missing its
	// mandatory fields.
	ErrInvalidProfile = errors.New("invalid federated profile")
)
