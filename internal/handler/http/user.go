package http

import (
	"net/http"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// me handles GET /api/v1/user/me. The auth middleware has already loaded
// the account, so this only projects it.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		h.respondError(w, r, apperrors.Internal("user missing from authenticated request"))
		return
	}

	respondSuccess(w, r, http.StatusOK, models.MeResponse{
		ID:         user.UserID,
		Email:      user.Email,
		Name:       user.Name,
		IsVerified: user.IsVerified,
	}, "")
}

// listSessions handles GET /api/v1/user/sessions, returning the caller's
// active sessions newest first.
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		h.respondError(w, r, apperrors.Internal("user missing from authenticated request"))
		return
	}

	sessions, err := h.services.UserService.ListSessions(r.Context(), user.UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, sessions, "")
}

// revokeSession handles POST /api/v1/user/sessions/{id}/revoke. Ownership is
// enforced in the service, so a foreign session id reads as not found.
func (h *Handler) revokeSession(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		h.respondError(w, r, apperrors.Internal("user missing from authenticated request"))
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperrors.NotFound(apperrors.CodeSessionNotFound, "Session not found"))
		return
	}

	if err := h.services.UserService.RevokeSession(r.Context(), user.UserID, sessionID); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, nil, "Session revoked successfully")
}
