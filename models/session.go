package models

import (
	"time"

	"github.com/google/uuid"
)

// Session is a persisted, revocable refresh-token record. One row exists per
// issued refresh secret; the plaintext secret is never stored, only its
// SHA-256 hash.
type Session struct {
	// SessionID is the unique identifier of the session row.
	SessionID uuid.UUID `json:"id"`

	// UserID references the account the session belongs to.
	UserID int64 `json:"-"`

	// TokenHash is the hex-encoded SHA-256 digest of the refresh secret.
	// It is the lookup key during refresh rotation and is never serialized.
	TokenHash string `json:"-"`

	// ExpiresAt is the absolute expiry of the refresh secret. An expired
	// session can no longer be exchanged for new tokens.
	ExpiresAt time.Time `json:"expiresAt"`

	// UserAgent is the free-text client descriptor captured at issuance.
	// Informational only.
	UserAgent string `json:"userAgent"`

	// IsValid is flipped to false on rotation, logout, explicit revocation,
	// or bulk invalidation after a password reset. A session whose flag is
	// false can never authenticate again.
	IsValid bool `json:"-"`

	// CreatedAt is the timestamp the session was issued.
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session's refresh secret has passed its
// absolute expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
