// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/adapter"
	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/store"
	"github.com/MKhiriev/tradeflix-auth/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService. It composes the
// credential and session stores with the token service and the outbound
// collaborators (mailer, deliverability checker) and owns every
// authentication flow end to end.
type authService struct {
	// users is the credential store.
	users store.UserRepository

	// sessions is the session store backing refresh-secret rotation.
	sessions store.SessionRepository

	// tokens mints and validates all token classes.
	tokens TokenService

	// mailer delivers verification and reset emails. Best-effort only.
	mailer adapter.Mailer

	// mailCheck is the advisory deliverability checker consulted at
	// registration. Only a positive INVALID verdict blocks.
	mailCheck adapter.EmailChecker

	// clientURL is the base URL of the browser client, used to build the
	// links embedded in outbound emails.
	clientURL string

	// bcryptCost is the work factor for password hashing.
	bcryptCost int

	// now is the clock, injected for deterministic expiry tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given stores and
// collaborators. The returned service is safe for concurrent use; all state
// is read-only after construction.
func NewAuthService(
	storages store.Storages,
	tokens TokenService,
	mailer adapter.Mailer,
	mailCheck adapter.EmailChecker,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) AuthService {
	return &authService{
		users:      storages.UserRepository,
		sessions:   storages.SessionRepository,
		tokens:     tokens,
		mailer:     mailer,
		mailCheck:  mailCheck,
		clientURL:  cfg.App.ClientURL,
		bcryptCost: cfg.Auth.BcryptCost,
		now:        time.Now,
		logger:     logger,
	}
}

// Register creates an unverified account.
//
// The deliverability check is advisory: only a positive INVALID verdict
// rejects the address, so an unreachable checker never blocks registration.
// The verification email is sent best-effort; a delivery failure is logged
// and the registration still succeeds.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)

	if verdict := a.mailCheck.CheckEmail(ctx, email); verdict == adapter.VerdictInvalid {
		log.Warn().Str("email", email).Msg("registration rejected: undeliverable email")
		return apperrors.BadRequest(apperrors.CodeInvalidEmail, "Email is invalid or does not exist")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := a.users.CreateUser(ctx, models.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return apperrors.Conflict(apperrors.CodeEmailInUse, "Email already in use")
		}
		return fmt.Errorf("creating user: %w", err)
	}

	a.sendVerificationEmail(ctx, user)

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return nil
}

// VerifyEmail confirms the account referenced by a verification token.
// Re-verifying an already-verified account succeeds without touching the row.
func (a *authService) VerifyEmail(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return apperrors.BadRequest(apperrors.CodeMissingToken, "Missing verification token")
	}

	payload, err := a.tokens.ParseVerificationToken(tokenString)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperrors.BadRequest(apperrors.CodeTokenExpired, "Verification token has expired").WithCause(err)
	case err != nil:
		return apperrors.BadRequest(apperrors.CodeInvalidToken, "Invalid or expired token").WithCause(err)
	}

	user, err := a.users.FindUserByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return apperrors.NotFound(apperrors.CodeUserNotFound, "User not found")
		}
		return fmt.Errorf("loading user %d: %w", payload.UserID, err)
	}

	if user.IsVerified {
		return nil
	}

	if err := a.users.SetVerified(ctx, user.UserID); err != nil {
		return fmt.Errorf("marking user %d verified: %w", user.UserID, err)
	}

	log.Info().Str("email", user.Email).Msg("email verified")
	return nil
}

// Login authenticates a password credential.
//
// Unknown email, passwordless account and wrong password all collapse into
// the same INVALID_CREDENTIALS failure so responses cannot be used to probe
// which addresses are registered. The verification gate applies only after
// the credential matched.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, userAgent string) (models.AuthSession, error) {
	log := logger.FromContext(ctx)

	invalidCredentials := apperrors.Unauthorized(apperrors.CodeInvalidCredentials, "Invalid email or password")

	user, err := a.users.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthSession{}, invalidCredentials
		}
		return models.AuthSession{}, fmt.Errorf("looking up user: %w", err)
	}

	if !user.HasPassword() {
		return models.AuthSession{}, invalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return models.AuthSession{}, invalidCredentials
	}

	if !user.IsVerified {
		return models.AuthSession{}, apperrors.Forbidden(apperrors.CodeEmailNotVerified, "Please verify your email address to log in.")
	}

	session, err := a.openSession(ctx, user, userAgent)
	if err != nil {
		return models.AuthSession{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	return session, nil
}

// Refresh rotates the presented refresh secret.
//
// The old session is invalidated with a conditional update before the new
// pair is minted, so two concurrent presentations of the same secret have
// exactly one winner; the loser is rejected like any other invalid secret.
// Every rejection uses the same INVALID_REFRESH_TOKEN failure regardless of
// cause.
func (a *authService) Refresh(ctx context.Context, refreshSecret, userAgent string) (models.AuthSession, error) {
	log := logger.FromContext(ctx)

	invalidRefresh := apperrors.Forbidden(apperrors.CodeInvalidRefreshToken, "Invalid or expired refresh token.")

	session, err := a.sessions.FindSessionByTokenHash(ctx, a.tokens.HashRefreshSecret(refreshSecret))
	if err != nil {
		if errors.Is(err, store.ErrNoSessionWasFound) {
			log.Warn().Msg("refresh with unknown secret")
			return models.AuthSession{}, invalidRefresh
		}
		return models.AuthSession{}, fmt.Errorf("looking up session: %w", err)
	}

	if !session.IsValid || session.Expired(a.now()) {
		log.Warn().Str("session_id", session.SessionID.String()).Msg("refresh with dead session")
		return models.AuthSession{}, invalidRefresh
	}

	user, err := a.users.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.AuthSession{}, invalidRefresh
		}
		return models.AuthSession{}, fmt.Errorf("loading session user: %w", err)
	}

	if err := a.sessions.InvalidateSession(ctx, session.SessionID); err != nil {
		if errors.Is(err, store.ErrSessionAlreadyInvalid) {
			// Lost the rotation race: another request already spent this secret.
			log.Warn().Str("session_id", session.SessionID.String()).Msg("refresh lost rotation race")
			return models.AuthSession{}, invalidRefresh
		}
		return models.AuthSession{}, fmt.Errorf("invalidating session: %w", err)
	}

	rotated, err := a.openSession(ctx, user, userAgent)
	if err != nil {
		return models.AuthSession{}, err
	}

	log.Info().Int64("user_id", user.UserID).Msg("refresh token rotated")
	return rotated, nil
}

// Logout invalidates the session behind the presented secret. It never
// fails: an absent, unknown or already-spent secret all end the same way,
// with the caller's cookie cleared by the handler.
func (a *authService) Logout(ctx context.Context, refreshSecret string) error {
	log := logger.FromContext(ctx)

	if refreshSecret == "" {
		return nil
	}

	session, err := a.sessions.FindSessionByTokenHash(ctx, a.tokens.HashRefreshSecret(refreshSecret))
	if err != nil {
		if !errors.Is(err, store.ErrNoSessionWasFound) {
			log.Err(err).Msg("logout session lookup failed")
		}
		return nil
	}

	if err := a.sessions.InvalidateSession(ctx, session.SessionID); err != nil && !errors.Is(err, store.ErrSessionAlreadyInvalid) {
		log.Err(err).Str("session_id", session.SessionID.String()).Msg("logout invalidation failed")
	}
	return nil
}

// ForgotPassword issues a reset token and mails it to the account.
//
// The flow is deliberately silent about whether the address is registered:
// an unknown email returns the same nil outcome as a successful send.
func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	user, err := a.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("email", email).Msg("password reset attempt for unknown email")
			return nil
		}
		return fmt.Errorf("looking up user: %w", err)
	}

	resetToken, err := a.tokens.IssueResetToken(user)
	if err != nil {
		return fmt.Errorf("issuing reset token: %w", err)
	}

	if err := a.mailer.Send(ctx, user.Email, resetSubject, passwordResetEmail(a.clientURL, user.Name, resetToken)); err != nil {
		log.Err(err).Str("email", user.Email).Msg("sending password reset email failed")
	}
	return nil
}

// ResetPassword replaces the account password referenced by a reset token,
// then invalidates every valid session of the account so stolen refresh
// secrets die with the old password.
func (a *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return apperrors.BadRequest(apperrors.CodeMissingToken, "Missing password reset token")
	}

	payload, err := a.tokens.ParseResetToken(tokenString)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperrors.BadRequest(apperrors.CodeTokenExpired, "Password reset token has expired.").WithCause(err)
	case err != nil:
		return apperrors.BadRequest(apperrors.CodeInvalidToken, "Invalid or expired token").WithCause(err)
	}

	user, err := a.users.FindUserByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return apperrors.NotFound(apperrors.CodeUserNotFound, "User not found")
		}
		return fmt.Errorf("loading user %d: %w", payload.UserID, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), a.bcryptCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := a.users.UpdatePassword(ctx, user.UserID, string(passwordHash)); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	invalidated, err := a.sessions.InvalidateAllUserSessions(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("invalidating sessions after password reset: %w", err)
	}

	log.Info().
		Str("email", user.Email).
		Int64("sessions_invalidated", invalidated).
		Msg("password reset")
	return nil
}

// openSession mints an auth pair for the user and records the session row
// keyed by the refresh secret's hash.
func (a *authService) openSession(ctx context.Context, user models.User, userAgent string) (models.AuthSession, error) {
	tokens, err := a.tokens.IssueAuthTokens(user)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("issuing auth tokens: %w", err)
	}

	if _, err := a.sessions.CreateSession(ctx, models.Session{
		UserID:    user.UserID,
		TokenHash: a.tokens.HashRefreshSecret(tokens.RefreshSecret),
		ExpiresAt: tokens.RefreshExpiresAt,
		UserAgent: userAgent,
		IsValid:   true,
	}); err != nil {
		return models.AuthSession{}, fmt.Errorf("creating session: %w", err)
	}

	return models.AuthSession{User: user, Tokens: tokens}, nil
}

// sendVerificationEmail issues a verification token and mails it. Failures
// are logged only: registration must not hinge on email delivery.
func (a *authService) sendVerificationEmail(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx)

	token, err := a.tokens.IssueVerificationToken(user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("issuing verification token failed")
		return
	}

	if err := a.mailer.Send(ctx, user.Email, verificationSubject, verificationEmail(a.clientURL, user.Name, token)); err != nil {
		log.Err(err).Str("email", user.Email).Msg("sending verification email failed")
	}
}

// normalizeEmail lowercases and trims an address so lookups and the unique
// index agree on a single canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
