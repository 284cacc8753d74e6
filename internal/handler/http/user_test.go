package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authorize stubs a passing auth middleware chain for the given user.
func authorize(deps *testDeps, user models.User) {
	deps.tokens.ParseAccessTokenFn = func(tokenString string) (models.TokenPayload, error) {
		if tokenString != "valid-access-token" {
			return models.TokenPayload{}, fmt.Errorf("unexpected token %q", tokenString)
		}
		return models.TokenPayload{UserID: user.UserID, Email: user.Email}, nil
	}
	deps.users.CurrentUserFn = func(_ context.Context, userID int64) (models.User, error) {
		if userID != user.UserID {
			return models.User{}, fmt.Errorf("unexpected user id %d", userID)
		}
		return user, nil
	}
}

func bearer(req *http.Request) {
	req.Header.Set("Authorization", "Bearer valid-access-token")
}

func doAuthedRequest(t *testing.T, h *Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	bearer(req)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func TestMe(t *testing.T) {
	h, deps := newTestHandler()
	authorize(deps, models.User{UserID: 42, Email: "trader@example.com", Name: "Trader", IsVerified: true})

	rec := doAuthedRequest(t, h, http.MethodGet, "/api/v1/user/me")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeSuccess(t, rec)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var me models.MeResponse
	require.NoError(t, json.Unmarshal(data, &me))
	assert.Equal(t, int64(42), me.ID)
	assert.Equal(t, "trader@example.com", me.Email)
	assert.Equal(t, "Trader", me.Name)
	assert.True(t, me.IsVerified)
}

func TestListSessions(t *testing.T) {
	h, deps := newTestHandler()
	user := models.User{UserID: 42, Email: "trader@example.com", IsVerified: true}
	authorize(deps, user)

	sessions := []models.Session{
		{SessionID: uuid.New(), UserAgent: "browser/2.0", ExpiresAt: time.Now().Add(time.Hour)},
		{SessionID: uuid.New(), UserAgent: "browser/1.0", ExpiresAt: time.Now().Add(time.Hour)},
	}
	deps.users.ListSessionsFn = func(_ context.Context, userID int64) ([]models.Session, error) {
		assert.Equal(t, int64(42), userID)
		return sessions, nil
	}

	rec := doAuthedRequest(t, h, http.MethodGet, "/api/v1/user/sessions")

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeSuccess(t, rec)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var got []models.Session
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, sessions[0].SessionID, got[0].SessionID)
	assert.NotContains(t, rec.Body.String(), "token_hash", "token hashes must never reach clients")
}

func TestRevokeSession(t *testing.T) {
	h, deps := newTestHandler()
	authorize(deps, models.User{UserID: 42, Email: "trader@example.com", IsVerified: true})

	target := uuid.New()
	deps.users.RevokeSessionFn = func(_ context.Context, userID int64, sessionID uuid.UUID) error {
		assert.Equal(t, int64(42), userID)
		assert.Equal(t, target, sessionID)
		return nil
	}

	rec := doAuthedRequest(t, h, http.MethodPost, "/api/v1/user/sessions/"+target.String()+"/revoke")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Session revoked successfully", decodeSuccess(t, rec).Message)
}

func TestRevokeSession_MalformedID(t *testing.T) {
	h, deps := newTestHandler()
	authorize(deps, models.User{UserID: 42, Email: "trader@example.com", IsVerified: true})

	rec := doAuthedRequest(t, h, http.MethodPost, "/api/v1/user/sessions/not-a-uuid/revoke")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeSessionNotFound, decodeError(t, rec).Code)
}

func TestRevokeSession_NotOwned(t *testing.T) {
	h, deps := newTestHandler()
	authorize(deps, models.User{UserID: 42, Email: "trader@example.com", IsVerified: true})
	deps.users.RevokeSessionFn = func(context.Context, int64, uuid.UUID) error {
		return apperrors.NotFound(apperrors.CodeSessionNotFound, "Session not found")
	}

	rec := doAuthedRequest(t, h, http.MethodPost, "/api/v1/user/sessions/"+uuid.NewString()+"/revoke")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRevokeSession_AlreadyRevoked(t *testing.T) {
	h, deps := newTestHandler()
	authorize(deps, models.User{UserID: 42, Email: "trader@example.com", IsVerified: true})
	deps.users.RevokeSessionFn = func(context.Context, int64, uuid.UUID) error {
		return apperrors.Conflict(apperrors.CodeSessionAlreadyRevoked, "Session already revoked")
	}

	rec := doAuthedRequest(t, h, http.MethodPost, "/api/v1/user/sessions/"+uuid.NewString()+"/revoke")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperrors.CodeSessionAlreadyRevoked, decodeError(t, rec).Code)
}
