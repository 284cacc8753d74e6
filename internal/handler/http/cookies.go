package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/tradeflix-auth/models"
)

// refreshCookieName is the cookie carrying the opaque refresh secret. The
// secret exists nowhere else on the client: it is HttpOnly, same-site
// strict, and Secure outside development.
const refreshCookieName = "refreshToken"

// setRefreshCookie binds the refresh secret to the client for the lifetime
// of its session.
func (h *Handler) setRefreshCookie(w http.ResponseWriter, tokens models.AuthTokens) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    tokens.RefreshSecret,
		Path:     "/",
		Expires:  tokens.RefreshExpiresAt,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshCookie overwrites the refresh cookie with an empty value that
// expired in the past, removing it from the client.
func (h *Handler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshSecretFromRequest reads the refresh secret cookie. Empty when the
// client presented none.
func refreshSecretFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
