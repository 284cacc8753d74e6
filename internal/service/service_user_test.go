package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/mock"
	"github.com/MKhiriev/tradeflix-auth/internal/store"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserService(t *testing.T, ctrl *gomock.Controller) (*userService, *mock.MockUserRepository, *mock.MockSessionRepository) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	sessions := mock.NewMockSessionRepository(ctrl)

	svc := NewUserService(store.Storages{UserRepository: users, SessionRepository: sessions}, logger.Nop()).(*userService)
	return svc, users, sessions
}

func TestUserService_CurrentUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserService(t, ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(42)).Return(models.User{UserID: 42, Email: "trader@example.com"}, nil)

	user, err := svc.CurrentUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "trader@example.com", user.Email)
}

func TestUserService_CurrentUser_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, _ := newTestUserService(t, ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(404)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.CurrentUser(ctx, 404)
	assertAppError(t, err, http.StatusNotFound, apperrors.CodeUserNotFound)
}

func TestUserService_ListSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, sessions := newTestUserService(t, ctrl)
	ctx := context.Background()

	active := []models.Session{
		{SessionID: uuid.New(), UserID: 42, UserAgent: "firefox", ExpiresAt: time.Now().Add(time.Hour), IsValid: true},
		{SessionID: uuid.New(), UserID: 42, UserAgent: "mobile", ExpiresAt: time.Now().Add(time.Hour), IsValid: true},
	}
	sessions.EXPECT().ListActiveSessions(ctx, int64(42)).Return(active, nil)

	got, err := svc.ListSessions(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUserService_RevokeSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, sessions := newTestUserService(t, ctrl)
	ctx := context.Background()

	sessionID := uuid.New()
	gomock.InOrder(
		sessions.EXPECT().FindSessionByID(ctx, sessionID, int64(42)).Return(models.Session{SessionID: sessionID, UserID: 42, IsValid: true}, nil),
		sessions.EXPECT().InvalidateSession(ctx, sessionID).Return(nil),
	)

	assert.NoError(t, svc.RevokeSession(ctx, 42, sessionID))
}

// A session belonging to another user must look exactly like a nonexistent
// one.
func TestUserService_RevokeSession_NotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, sessions := newTestUserService(t, ctrl)
	ctx := context.Background()

	sessionID := uuid.New()
	sessions.EXPECT().FindSessionByID(ctx, sessionID, int64(42)).Return(models.Session{}, store.ErrNoSessionWasFound)

	err := svc.RevokeSession(ctx, 42, sessionID)
	assertAppError(t, err, http.StatusNotFound, apperrors.CodeSessionNotFound)
}

func TestUserService_RevokeSession_AlreadyRevoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, sessions := newTestUserService(t, ctrl)
	ctx := context.Background()

	sessionID := uuid.New()
	gomock.InOrder(
		sessions.EXPECT().FindSessionByID(ctx, sessionID, int64(42)).Return(models.Session{SessionID: sessionID, UserID: 42}, nil),
		sessions.EXPECT().InvalidateSession(ctx, sessionID).Return(store.ErrSessionAlreadyInvalid),
	)

	err := svc.RevokeSession(ctx, 42, sessionID)
	assertAppError(t, err, http.StatusConflict, apperrors.CodeSessionAlreadyRevoked)
}
