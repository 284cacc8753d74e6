// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/service"
)

// auth guards the account-management routes.
//
// It extracts the bearer access token, validates it, loads the account, and
// rejects unverified accounts — the verification flag is re-checked against
// the store on every request, so a token minted before an account change
// cannot outlive it. An expired token is distinguished from every other
// failure so clients know to attempt a refresh.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		tokenString, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn().Err(err).Msg("request without usable credential")
			h.respondError(w, r, apperrors.Unauthorized(apperrors.CodeMissingToken, "Not authorized, no token"))
			return
		}

		payload, err := h.services.TokenService.ParseAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				h.respondError(w, r, apperrors.Unauthorized(apperrors.CodeTokenExpired, "Not authorized, token expired"))
				return
			}
			h.respondError(w, r, apperrors.Unauthorized(apperrors.CodeInvalidToken, "Not authorized, token invalid"))
			return
		}

		user, err := h.services.UserService.CurrentUser(ctx, payload.UserID)
		if err != nil {
			h.respondError(w, r, apperrors.Unauthorized(apperrors.CodeInvalidToken, "Not authorized, user not found"))
			return
		}

		if !user.IsVerified {
			h.respondError(w, r, apperrors.Forbidden(apperrors.CodeEmailNotVerified, "Not authorized, email not verified"))
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(ctx, user)))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
