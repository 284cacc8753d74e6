package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by access tokens. On top of the
// registered claims (sub, iss, iat, exp) it asserts the account email so
// downstream services can identify the caller without a store lookup.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Email is the authenticated account's email address.
	Email string `json:"email,omitempty"`
}

// TokenPayload is the decoded, validated content of a signed token. It is
// what the service layer hands back after a successful parse; handlers never
// inspect raw JWT claims directly.
type TokenPayload struct {
	// UserID is the "sub" claim parsed to the internal user identifier.
	UserID int64

	// Email is the "email" claim. Empty for verification and reset tokens,
	// which assert only the subject.
	Email string
}

// AuthSession bundles everything a successful authentication event produces:
// the authenticated user and the freshly minted token pair. Handlers split it
// into the response body (access token, public user) and the refresh cookie.
type AuthSession struct {
	User   User
	Tokens AuthTokens
}

// AuthTokens is the product of a successful authentication event: a signed
// short-lived access token plus an opaque refresh secret and its absolute
// expiry. The refresh secret travels only inside the HttpOnly cookie; the
// access token is returned in the response body.
type AuthTokens struct {
	// AccessToken is the compact JWS serialization of the access token.
	AccessToken string

	// RefreshSecret is the opaque high-entropy bearer secret. Its SHA-256
	// hash is what the session store persists.
	RefreshSecret string

	// RefreshExpiresAt is the absolute expiry of the refresh secret and of
	// the session row created alongside it.
	RefreshExpiresAt time.Time
}
