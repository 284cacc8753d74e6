package service

import (
	"context"

	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
)

// TokenService mints and validates the four token classes used by the
// service. Each class is signed (or, for refresh secrets, hashed) with its
// own disjoint secret, so possession of one class never stands in for
// another.
type TokenService interface {
	// IssueAccessToken signs a short-lived access token asserting the
	// user's ID and email.
	IssueAccessToken(user models.User) (string, error)

	// ParseAccessToken validates an access token and returns its payload.
	// Returns ErrTokenExpired or ErrTokenInvalid on failure.
	ParseAccessToken(tokenString string) (models.TokenPayload, error)

	// IssueAuthTokens mints a full authentication pair: an access token
	// plus a fresh opaque refresh secret with its absolute expiry.
	IssueAuthTokens(user models.User) (models.AuthTokens, error)

	// HashRefreshSecret returns the hex SHA-256 digest of an opaque refresh
	// secret. The digest is the only form the session store ever sees.
	HashRefreshSecret(secret string) string

	// IssueVerificationToken signs a single-purpose email-verification token.
	IssueVerificationToken(user models.User) (string, error)

	// ParseVerificationToken validates an email-verification token.
	// Returns ErrTokenExpired or ErrTokenInvalid on failure.
	ParseVerificationToken(tokenString string) (models.TokenPayload, error)

	// IssueResetToken signs a single-purpose password-reset token.
	IssueResetToken(user models.User) (string, error)

	// ParseResetToken validates a password-reset token.
	// Returns ErrTokenExpired or ErrTokenInvalid on failure.
	ParseResetToken(tokenString string) (models.TokenPayload, error)
}

// AuthService implements the authentication flows. Methods return
// *apperrors.Error for every failure the client is meant to see; anything
// else is an internal fault the HTTP layer renders generically.
type AuthService interface {
	// Register creates an unverified account and sends the verification
	// email best-effort.
	Register(ctx context.Context, req models.RegisterRequest) error

	// VerifyEmail confirms the account referenced by a verification token.
	// Verifying an already-verified account succeeds idempotently.
	VerifyEmail(ctx context.Context, tokenString string) error

	// Login authenticates a password credential and opens a session.
	Login(ctx context.Context, req models.LoginRequest, userAgent string) (models.AuthSession, error)

	// FederatedLogin signs in (creating or linking the account as needed)
	// from a provider-asserted identity profile.
	FederatedLogin(ctx context.Context, profile models.FederatedProfile, userAgent string) (models.AuthSession, error)

	// Refresh rotates a refresh secret: the presented secret's session is
	// invalidated and a brand-new pair is minted. Concurrent presentations
	// of the same secret have exactly one winner.
	Refresh(ctx context.Context, refreshSecret, userAgent string) (models.AuthSession, error)

	// Logout invalidates the session behind the presented secret.
	// Best-effort: it never fails, whatever the secret's state.
	Logout(ctx context.Context, refreshSecret string) error

	// ForgotPassword issues a reset token and mails it. Its outcome is
	// indistinguishable for known and unknown addresses.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword replaces the password referenced by a reset token and
	// invalidates every session of the account.
	ResetPassword(ctx context.Context, tokenString, newPassword string) error
}

// UserService serves the authenticated account-management endpoints.
type UserService interface {
	// CurrentUser loads the authenticated user's account record.
	CurrentUser(ctx context.Context, userID int64) (models.User, error)

	// ListSessions returns the user's active sessions, newest first.
	ListSessions(ctx context.Context, userID int64) ([]models.Session, error)

	// RevokeSession invalidates one of the user's own sessions.
	RevokeSession(ctx context.Context, userID int64, sessionID uuid.UUID) error
}
