package store

import (
	"context"
	"time"

	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: persisted user identity with
// password hash, verification flag, and optional federated-identity linkage.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. Returns ErrEmailAlreadyExists on a duplicate email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks up an account by its lowercase-normalized email.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks up an account by its identifier.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FindUserByGoogleID looks up an account by its federated identifier.
	// Returns ErrNoUserWasFound when no account matches.
	FindUserByGoogleID(ctx context.Context, googleID string) (models.User, error)

	// SetVerified marks the account's email as confirmed.
	SetVerified(ctx context.Context, userID int64) error

	// UpdatePassword replaces the account's password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// LinkGoogleID attaches a federated identifier to an existing account,
	// marks it verified, and sets the display name if none was present.
	LinkGoogleID(ctx context.Context, userID int64, googleID, name string) (models.User, error)
}

// SessionRepository is the session store: one row per issued refresh secret,
// keyed by the secret's SHA-256 hash.
type SessionRepository interface {
	// CreateSession persists a new session row.
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)

	// FindSessionByTokenHash looks up the session matching a refresh-secret
	// hash. Returns ErrNoSessionWasFound when no row matches.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (models.Session, error)

	// FindSessionByID looks up a session owned by the given user.
	// Returns ErrNoSessionWasFound when no row matches.
	FindSessionByID(ctx context.Context, sessionID uuid.UUID, userID int64) (models.Session, error)

	// InvalidateSession conditionally flips is_valid to false. The update is
	// guarded by is_valid = TRUE so concurrent rotations of the same secret
	// have exactly one winner; the loser receives ErrSessionAlreadyInvalid.
	InvalidateSession(ctx context.Context, sessionID uuid.UUID) error

	// InvalidateAllUserSessions flips is_valid to false for every valid
	// session of the user. Used after a password reset to log out all
	// devices. Returns the number of sessions invalidated.
	InvalidateAllUserSessions(ctx context.Context, userID int64) (int64, error)

	// ListActiveSessions returns the user's valid, unexpired sessions,
	// newest first.
	ListActiveSessions(ctx context.Context, userID int64) ([]models.Session, error)

	// DeleteExpiredSessions removes rows whose expiry is before the cutoff.
	// Returns the number of rows deleted.
	DeleteExpiredSessions(ctx context.Context, expiredBefore time.Time) (int64, error)
}
