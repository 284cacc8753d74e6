// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/tradeflix-auth/internal/apperrors"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/validation"
	"github.com/MKhiriev/tradeflix-auth/models"
)

// register handles POST /api/v1/auth/register.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.AuthService.Register(r.Context(), req); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusCreated, nil,
		"Registration successful. Please check your email to verify your account.")
}

// login handles POST /api/v1/auth/login. On success the refresh secret goes
// into the HttpOnly cookie and the access token into the body.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), req, userAgent(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.setRefreshCookie(w, result.Tokens)
	respondSuccess(w, r, http.StatusOK, models.LoginResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        result.User.Public(),
	}, "")
}

// logout handles POST /api/v1/auth/logout. Always succeeds and always
// clears the cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AuthService.Logout(r.Context(), refreshSecretFromRequest(r)); err != nil {
		logger.FromRequest(r).Err(err).Msg("logout failed")
	}

	h.clearRefreshCookie(w)
	respondSuccess(w, r, http.StatusOK, nil, "Logged out successfully")
}

// refreshToken handles POST /api/v1/auth/refresh-token, rotating the cookie
// secret for a fresh pair. A rejected secret takes the stale cookie with it.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	secret := refreshSecretFromRequest(r)
	if secret == "" {
		h.respondError(w, r, apperrors.Unauthorized(apperrors.CodeNoRefreshToken, "Access denied. No refresh token."))
		return
	}

	result, err := h.services.AuthService.Refresh(r.Context(), secret, userAgent(r))
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeInvalidRefreshToken {
			h.clearRefreshCookie(w)
		}
		h.respondError(w, r, err)
		return
	}

	h.setRefreshCookie(w, result.Tokens)
	respondSuccess(w, r, http.StatusOK, models.LoginResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        result.User.Public(),
	}, "")
}

// verifyEmail handles GET /api/v1/auth/verify-email?token=<token>.
//
// The link arrives from an email client, so outcomes the user can act on are
// browser redirects into the client app rather than JSON: success and
// already-verified land on the login page, expired and invalid tokens land
// back on the verification page with an error marker.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	err := h.services.AuthService.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err == nil {
		http.Redirect(w, r, fmt.Sprintf("%s/login?verified=true", h.clientURL), http.StatusFound)
		return
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.CodeTokenExpired:
			http.Redirect(w, r, fmt.Sprintf("%s/email-verification?error=expired", h.clientURL), http.StatusFound)
			return
		case apperrors.CodeInvalidToken:
			http.Redirect(w, r, fmt.Sprintf("%s/email-verification?error=invalid", h.clientURL), http.StatusFound)
			return
		}
	}

	h.respondError(w, r, err)
}

// forgotPassword handles POST /api/v1/auth/forgot-password. The response is
// the same whether or not the address is registered.
func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req.Email); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, nil,
		"If an account with that email exists, a reset link has been sent.")
}

// resetPassword handles POST /api/v1/auth/reset-password?token=<token>. The
// token travels in the query string, mirroring how the emailed link carries
// it; the new password is in the body.
func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := validation.DecodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.AuthService.ResetPassword(r.Context(), r.URL.Query().Get("token"), req.Password); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, nil, "Password reset successful. Please log in.")
}

// googleCallback handles GET /api/v1/auth/google/callback.
//
// The browser arrives here from Google's consent screen, so failures
// redirect back into the client rather than render JSON. On success the
// refresh cookie is set and the client's callback page picks the session up
// through the refresh endpoint.
func (h *Handler) googleCallback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	failureURL := fmt.Sprintf("%s/login?error=oauth_failed", h.clientURL)

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Warn().Msg("oauth callback without code")
		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	profile, err := h.identity.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Msg("oauth code exchange failed")
		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	result, err := h.services.AuthService.FederatedLogin(ctx, profile, userAgent(r))
	if err != nil {
		log.Err(err).Msg("federated login failed")
		http.Redirect(w, r, failureURL, http.StatusFound)
		return
	}

	h.setRefreshCookie(w, result.Tokens)
	http.Redirect(w, r, fmt.Sprintf("%s/google-callback", h.clientURL), http.StatusFound)
}

// userAgent returns the client descriptor recorded on new sessions.
func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "unknown"
}
