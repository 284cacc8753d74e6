package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/store"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
)

// userService serves the authenticated account-management endpoints: the
// current-user profile and session listing/revocation.
type userService struct {
	users    store.UserRepository
	sessions store.SessionRepository
	logger   *logger.Logger
}

// NewUserService constructs a UserService over the given stores.
func NewUserService(storages store.Storages, logger *logger.Logger) UserService {
	return &userService{
		users:    storages.UserRepository,
		sessions: storages.SessionRepository,
		logger:   logger,
	}
}

// CurrentUser loads the authenticated user's account record.
func (u *userService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := u.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, apperrors.NotFound(apperrors.CodeUserNotFound, "User not found")
		}
		return models.User{}, fmt.Errorf("loading user %d: %w", userID, err)
	}
	return user, nil
}

// ListSessions returns the user's valid, unexpired sessions, newest first.
func (u *userService) ListSessions(ctx context.Context, userID int64) ([]models.Session, error) {
	sessions, err := u.sessions.ListActiveSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions for user %d: %w", userID, err)
	}
	return sessions, nil
}

// RevokeSession invalidates one of the user's own sessions. The ownership
// check happens in the lookup, so a session ID belonging to another user is
// indistinguishable from a nonexistent one.
func (u *userService) RevokeSession(ctx context.Context, userID int64, sessionID uuid.UUID) error {
	log := logger.FromContext(ctx)

	session, err := u.sessions.FindSessionByID(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoSessionWasFound) {
			return apperrors.NotFound(apperrors.CodeSessionNotFound, "Session not found")
		}
		return fmt.Errorf("loading session: %w", err)
	}

	if err := u.sessions.InvalidateSession(ctx, session.SessionID); err != nil {
		if errors.Is(err, store.ErrSessionAlreadyInvalid) {
			return apperrors.Conflict(apperrors.CodeSessionAlreadyRevoked, "Session already revoked")
		}
		return fmt.Errorf("revoking session: %w", err)
	}

	log.Info().
		Int64("user_id", userID).
		Str("session_id", sessionID.String()).
		Msg("session revoked")
	return nil
}
